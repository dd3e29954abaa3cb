package normalizer

import (
	"math"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

// Synthesis fills the financial skeleton a source table lacks with bounded
// random stand-ins. Fields already present in the source are never
// overwritten; random draws happen only when a value is actually computed,
// in fixed row and field order, so a pinned seed reproduces the output
// exactly.

func (n *Normalizer) uniform(r Range) float64 {
	return r.Min + n.rng.Float64()*(r.Max-r.Min)
}

// poisson draws by Knuth's method; fine for the small means used here.
func (n *Normalizer) poisson(mean float64) float64 {
	if mean <= 0 {
		return 0
	}
	limit := math.Exp(-mean)
	k, p := 0, 1.0
	for p > limit {
		k++
		p *= n.rng.Float64()
	}
	return float64(k - 1)
}

func setIfMissing(t *tabular.Table, r tabular.Row, col string, compute func() (float64, bool)) {
	t.AddColumn(col)
	if !r.Get(col).IsMissing() {
		return
	}
	if v, ok := compute(); ok {
		r.Set(col, tabular.Num(v))
	}
}

func (n *Normalizer) synthesizeConsumer(t *tabular.Table) {
	s := n.cfg.Synthesis
	t.AddColumn(models.ColBorrowerType)

	for _, r := range t.Rows {
		r.Set(models.ColBorrowerType, tabular.Str(models.TypeConsumer))

		setIfMissing(t, r, models.ColAnnualIncome, func() (float64, bool) {
			txn, ok := r.Get(models.ColTransactionAmount).Float()
			if !ok {
				return 0, false
			}
			return txn * 12 * (1 + n.rng.NormFloat64()*s.IncomeNoiseStdDev), true
		})
		setIfMissing(t, r, models.ColCurrentAssets, func() (float64, bool) {
			income, ok := r.Get(models.ColAnnualIncome).Float()
			if !ok {
				return 0, false
			}
			return income * n.uniform(s.ConsumerAssetsOfIncome), true
		})
		setIfMissing(t, r, models.ColCurrentLiabilities, func() (float64, bool) {
			loan, ok := r.Get(models.ColLoanAmount).Float()
			if !ok {
				return 0, false
			}
			return loan * n.uniform(s.ConsumerLiabilitiesOfLoan), true
		})
		setIfMissing(t, r, models.ColTotalAssets, func() (float64, bool) {
			ca, ok := r.Get(models.ColCurrentAssets).Float()
			if !ok {
				return 0, false
			}
			return ca * n.uniform(s.ConsumerTotalOfCurrent), true
		})
		setIfMissing(t, r, models.ColTotalEquity, func() (float64, bool) {
			ta, ok := r.Get(models.ColTotalAssets).Float()
			if !ok {
				return 0, false
			}
			return ta * n.uniform(s.ConsumerEquityOfTotal), true
		})
		setIfMissing(t, r, models.ColTotalDebt, func() (float64, bool) {
			ta, ok1 := r.Get(models.ColTotalAssets).Float()
			te, ok2 := r.Get(models.ColTotalEquity).Float()
			if !ok1 || !ok2 {
				return 0, false
			}
			return ta - te, true
		})

		// Tenure proxies derived from age.
		setIfMissing(t, r, models.ColCreditHistoryYears, func() (float64, bool) {
			age, ok := r.Get(models.ColAge).Float()
			if !ok {
				return 0, false
			}
			return math.Max(1, age-s.WorkingAgeStart-n.poisson(s.ConsumerHistoryGapMean)), true
		})
		setIfMissing(t, r, models.ColYearsInBusiness, func() (float64, bool) {
			age, ok := r.Get(models.ColAge).Float()
			if !ok {
				return 0, false
			}
			return age - s.WorkingAgeStart, true
		})
		setIfMissing(t, r, models.ColManagementExp, func() (float64, bool) {
			years, ok := r.Get(models.ColYearsInBusiness).Float()
			if !ok {
				return 0, false
			}
			return years * s.ManagementShare, true
		})
	}
}

func (n *Normalizer) synthesizeSME(t *tabular.Table) {
	s := n.cfg.Synthesis
	t.AddColumn(models.ColBorrowerType)

	hasOneHots := t.Has("industry_healthcare") || t.Has("industry_retail") || t.Has("industry_technology")
	needIndustry := hasOneHots || !t.Has(models.ColIndustry)
	if needIndustry {
		t.AddColumn(models.ColIndustry)
	}

	for _, r := range t.Rows {
		r.Set(models.ColBorrowerType, tabular.Str(models.TypeSME))

		setIfMissing(t, r, models.ColLoanAmount, func() (float64, bool) {
			rev, ok := r.Get(models.ColAnnualRevenue).Float()
			if !ok {
				return 0, false
			}
			return rev * n.uniform(s.SMELoanOfRevenue), true
		})
		setIfMissing(t, r, models.ColCurrentAssets, func() (float64, bool) {
			rev, ok := r.Get(models.ColAnnualRevenue).Float()
			if !ok {
				return 0, false
			}
			return rev * n.uniform(s.SMEAssetsOfRevenue), true
		})
		setIfMissing(t, r, models.ColCurrentLiabilities, func() (float64, bool) {
			ca, ok := r.Get(models.ColCurrentAssets).Float()
			if !ok {
				return 0, false
			}
			return ca * n.uniform(s.SMELiabilitiesOfAssets), true
		})
		setIfMissing(t, r, models.ColTotalAssets, func() (float64, bool) {
			rev, ok := r.Get(models.ColAnnualRevenue).Float()
			if !ok {
				return 0, false
			}
			return rev * n.uniform(s.SMETotalOfRevenue), true
		})
		setIfMissing(t, r, models.ColTotalEquity, func() (float64, bool) {
			ta, ok := r.Get(models.ColTotalAssets).Float()
			if !ok {
				return 0, false
			}
			return ta * n.uniform(s.SMEEquityOfTotal), true
		})
		setIfMissing(t, r, models.ColTotalDebt, func() (float64, bool) {
			ta, ok1 := r.Get(models.ColTotalAssets).Float()
			te, ok2 := r.Get(models.ColTotalEquity).Float()
			if !ok1 || !ok2 {
				return 0, false
			}
			return ta - te, true
		})

		setIfMissing(t, r, models.ColYearsInBusiness, func() (float64, bool) {
			return n.poisson(s.SMETenureMean) + 1, true
		})
		setIfMissing(t, r, models.ColManagementExp, func() (float64, bool) {
			years, ok := r.Get(models.ColYearsInBusiness).Float()
			if !ok {
				return 0, false
			}
			return years + n.poisson(s.SMEManagementExtraMean), true
		})
		setIfMissing(t, r, models.ColCreditHistoryYears, func() (float64, bool) {
			years, ok := r.Get(models.ColYearsInBusiness).Float()
			if !ok {
				return 0, false
			}
			return math.Min(years, n.poisson(s.SMEHistoryMean)+1), true
		})

		// Collapse one-hot industry indicators to one categorical field.
		if needIndustry {
			if r.Get(models.ColIndustry).IsMissing() {
				r.Set(models.ColIndustry, tabular.Str("other"))
			}
			for _, oh := range oneHotIndustries {
				if f, ok := r.Get(oh.marker).Float(); ok && f == 1 {
					r.Set(models.ColIndustry, tabular.Str(oh.name))
				}
			}
		}
	}
}

var oneHotIndustries = []struct{ marker, name string }{
	{"industry_healthcare", "healthcare"},
	{"industry_retail", "retail"},
	{"industry_technology", "technology"},
}
