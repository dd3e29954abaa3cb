package normalizer

import (
	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

// computeRatios derives the standard financial ratios. A ratio column is
// added only when its inputs exist; a zero denominator or a missing input
// yields a missing cell, never infinity or a panic.
func (n *Normalizer) computeRatios(t *tabular.Table) {
	addRatio(t, models.ColCurrentRatio, models.ColCurrentAssets, models.ColCurrentLiabilities)

	// Quick ratio needs an inventory figure to back current assets out.
	if t.Has(models.ColCurrentAssets) && t.Has("inventory") && t.Has(models.ColCurrentLiabilities) {
		t.AddColumn(models.ColQuickRatio)
		for _, r := range t.Rows {
			ca, ok1 := r.Get(models.ColCurrentAssets).Float()
			inv, ok2 := r.Get("inventory").Float()
			cl, ok3 := r.Get(models.ColCurrentLiabilities).Float()
			if ok1 && ok2 && ok3 && cl != 0 {
				r.Set(models.ColQuickRatio, tabular.Num((ca-inv)/cl))
			}
		}
	}

	if !addRatio(t, models.ColDebtToEquity, models.ColTotalDebt, models.ColTotalEquity) {
		addRatio(t, models.ColDebtToEquity, "total_liabilities", models.ColTotalEquity)
	}

	if !addRatio(t, models.ColDebtServiceCover, "net_income", "debt_service") {
		addRatio(t, models.ColDebtServiceCover, "ebitda", "debt_service")
	}

	addRatio(t, models.ColReturnOnAssets, "net_income", models.ColTotalAssets)
	addRatio(t, models.ColReturnOnEquity, "net_income", models.ColTotalEquity)

	if !addRatio(t, models.ColAssetTurnover, "revenue", models.ColTotalAssets) {
		addRatio(t, models.ColAssetTurnover, "sales", models.ColTotalAssets)
	}

	if t.Has(models.ColCurrentAssets) && t.Has(models.ColCurrentLiabilities) {
		t.AddColumn(models.ColWorkingCapital)
		for _, r := range t.Rows {
			ca, ok1 := r.Get(models.ColCurrentAssets).Float()
			cl, ok2 := r.Get(models.ColCurrentLiabilities).Float()
			if ok1 && ok2 {
				r.Set(models.ColWorkingCapital, tabular.Num(ca-cl))
			}
		}
	}

	addRatio(t, models.ColEquityRatio, models.ColTotalEquity, models.ColTotalAssets)
}

// addRatio computes out = num/den per row when both columns exist. Returns
// whether the inputs were present at all.
func addRatio(t *tabular.Table, out, num, den string) bool {
	if !t.Has(num) || !t.Has(den) {
		return false
	}
	t.AddColumn(out)
	for _, r := range t.Rows {
		nv, ok1 := r.Get(num).Float()
		dv, ok2 := r.Get(den).Float()
		if ok1 && ok2 && dv != 0 {
			r.Set(out, tabular.Num(nv/dv))
		}
	}
	return true
}
