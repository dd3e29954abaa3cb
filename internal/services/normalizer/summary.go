package normalizer

import (
	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

type MetricStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
}

// Summary describes the unified table for reporting collaborators.
type Summary struct {
	TotalRecords   int                    `json:"total_records"`
	TotalColumns   int                    `json:"total_columns"`
	NumericColumns int                    `json:"numeric_columns"`
	MissingValues  int                    `json:"missing_values"`
	KeyMetrics     map[string]MetricStats `json:"key_metrics"`
}

var keyMetricColumns = []string{
	models.ColCurrentRatio,
	models.ColDebtToEquity,
	models.ColReturnOnAssets,
	"revenue_growth",
	models.ColDebtServiceCover,
}

// Summarize computes record counts and key-metric statistics over the
// unified table.
func Summarize(t *tabular.Table) Summary {
	s := Summary{
		TotalRecords:   t.Len(),
		TotalColumns:   len(t.Columns),
		NumericColumns: t.NumericColumns(),
		MissingValues:  t.MissingCells(),
		KeyMetrics:     make(map[string]MetricStats),
	}
	for _, col := range keyMetricColumns {
		if !t.Has(col) {
			continue
		}
		mean, ok := t.Mean(col)
		if !ok {
			continue
		}
		median, _ := t.Median(col)
		std, _ := t.StdDev(col)
		s.KeyMetrics[col] = MetricStats{Mean: mean, Median: median, StdDev: std}
	}
	return s
}
