package normalizer

import (
	"fivec_analysis/internal/tabular"
)

// impute applies the default-value policy to remaining gaps. Ratio columns
// take their documented conservative default, or the column median when no
// explicit default exists; categorical and behavioral fields take named
// defaults. A column whose every value is missing and that has no explicit
// default stays missing-marked.
func (n *Normalizer) impute(t *tabular.Table) {
	for _, col := range n.cfg.RatioColumns {
		if !t.Has(col) {
			continue
		}
		fill, ok := n.cfg.RatioDefaults[col]
		if !ok {
			if fill, ok = t.Median(col); !ok {
				continue
			}
		}
		fillMissingNum(t, col, fill)
	}

	for col, def := range n.cfg.CategoricalDefaults {
		if !t.Has(col) {
			continue
		}
		for _, r := range t.Rows {
			if r.Get(col).IsMissing() {
				r.Set(col, tabular.Str(def))
			}
		}
	}

	for col, def := range n.cfg.NumericDefaults {
		if t.Has(col) {
			fillMissingNum(t, col, def)
		}
	}
}

func fillMissingNum(t *tabular.Table, col string, fill float64) {
	for _, r := range t.Rows {
		if r.Get(col).IsMissing() {
			r.Set(col, tabular.Num(fill))
		}
	}
}
