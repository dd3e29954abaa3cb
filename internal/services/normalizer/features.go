package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

var leadingDigits = regexp.MustCompile(`(\d+)`)

// engineerFeatures adds the derived risk features and normalizes the
// free-text credit and payment history columns.
func (n *Normalizer) engineerFeatures(t *tabular.Table) {
	// Every record leaves with a borrower_id; gaps are filled sequentially.
	t.AddColumn(models.ColBorrowerID)
	for i, r := range t.Rows {
		if r.Get(models.ColBorrowerID).IsMissing() {
			r.Set(models.ColBorrowerID, tabular.Num(float64(i+1)))
		}
	}

	if !addGrowth(t, "revenue_growth", "revenue_current", "revenue_previous") {
		addGrowth(t, "revenue_growth", "revenue", "revenue_lag")
	}

	addRatio(t, models.ColLoanToValue, models.ColLoanAmount, models.ColCollateralValue)
	addRatio(t, models.ColAssetCoverageRatio, models.ColTotalAssets, "total_liabilities")

	if t.Has(models.ColIndustry) {
		t.AddColumn(models.ColIndustryRisk)
		for _, r := range t.Rows {
			r.Set(models.ColIndustryRisk, tabular.Num(n.industryRisk(r.Get(models.ColIndustry))))
		}
	}

	// Free-text credit history like "7 years" becomes a year count.
	if t.Has("credit_history") {
		t.AddColumn(models.ColCreditHistoryYears)
		for _, r := range t.Rows {
			years := 0.0
			if s, ok := r.Get("credit_history").Text(); ok {
				if m := leadingDigits.FindString(s); m != "" {
					if f, err := strconv.ParseFloat(m, 64); err == nil {
						years = f
					}
				}
			} else if f, ok := r.Get("credit_history").Float(); ok {
				years = f
			}
			r.Set(models.ColCreditHistoryYears, tabular.Num(years))
		}
	}

	// Management experience gaps take the column median while other numeric
	// fields wait for the generic default table.
	if t.Has(models.ColManagementExp) {
		fill, ok := t.Median(models.ColManagementExp)
		if !ok {
			fill = n.cfg.ManagementExpDefault
		}
		for _, r := range t.Rows {
			if r.Get(models.ColManagementExp).IsMissing() {
				r.Set(models.ColManagementExp, tabular.Num(fill))
			}
		}
	}

	// Categorical payment history becomes a delay-count proxy.
	if t.Has("payment_history") {
		t.AddColumn(models.ColPaymentDelays)
		for _, r := range t.Rows {
			delays := n.cfg.PaymentHistoryDefault
			if s, ok := r.Get("payment_history").Text(); ok {
				if d, found := n.cfg.PaymentHistoryDelays[strings.ToLower(s)]; found {
					delays = d
				}
			}
			r.Set(models.ColPaymentDelays, tabular.Num(delays))
		}
	}
}

// industryRisk picks the lowest risk value among substring matches in the
// lookup table, defaulting for unmatched or missing industries.
func (n *Normalizer) industryRisk(industry tabular.Value) float64 {
	s, ok := industry.Text()
	if !ok {
		return n.cfg.IndustryRiskDefault
	}
	s = strings.ToLower(s)
	risk := n.cfg.IndustryRiskDefault
	for marker, v := range n.cfg.IndustryRisk {
		if strings.Contains(s, marker) && v < risk {
			risk = v
		}
	}
	return risk
}

// addGrowth computes (current-previous)/previous per row.
func addGrowth(t *tabular.Table, out, cur, prev string) bool {
	if !t.Has(cur) || !t.Has(prev) {
		return false
	}
	t.AddColumn(out)
	for _, r := range t.Rows {
		c, ok1 := r.Get(cur).Float()
		p, ok2 := r.Get(prev).Float()
		if ok1 && ok2 && p != 0 {
			r.Set(out, tabular.Num((c-p)/p))
		}
	}
	return true
}
