package scoring

import (
	"math"
	"strings"

	"fivec_analysis/internal/models"
)

// acc implements the partial-coverage weighted average shared by all five
// component scorers: sub-rules whose attribute is absent contribute nothing
// to either sum, and a component with zero coverage scores NeutralScore.
type acc struct {
	sum    float64
	weight float64
}

func (a *acc) add(score, weight float64) {
	a.sum += score * weight
	a.weight += weight
}

func (a *acc) score() float64 {
	if a.weight > 0 {
		return a.sum / a.weight
	}
	return NeutralScore
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (e *Engine) normCreditScore(raw float64) float64 {
	span := e.rules.CreditScoreCeil - e.rules.CreditScoreFloor
	return clamp01((raw - e.rules.CreditScoreFloor) / span)
}

// characterScore rates credit history depth, payment behavior, the raw
// bureau score, and management or business tenure.
func (e *Engine) characterScore(b models.Borrower) float64 {
	r := e.rules.Character
	var a acc

	if years, ok := b.CreditHistory.Float(); ok {
		a.add(clamp01(years/r.HistoryFullYears), r.HistoryWeight)
	}

	if delays, ok := b.PaymentDelays.Float(); ok {
		s, matched := atMost(r.DelayBands, delays)
		if !matched {
			s = math.Max(0.2, 1.0-delays/10.0)
		}
		a.add(s, r.DelaysWeight)
	}

	if raw, ok := b.CreditScoreRaw.Float(); ok {
		a.add(e.normCreditScore(raw), r.ScoreWeight)
	}

	// Management experience preferred; business tenure is the fallback.
	if exp, ok := b.ManagementExp.Float(); ok {
		a.add(clamp01(exp/r.ManagementFullYears), r.ExperienceWeight)
	} else if years, ok := b.YearsInBusiness.Float(); ok {
		a.add(clamp01(years/r.BusinessFullYears), r.ExperienceWeight)
	}

	return a.score()
}

// capacityScore rates loan burden against income or revenue, liquidity,
// borrower stability, and the bureau score as a minor signal.
func (e *Engine) capacityScore(b models.Borrower) float64 {
	r := e.rules.Capacity
	var a acc

	if loan, ok := b.LoanAmount.Float(); ok && loan > 0 {
		if monthly, ok := b.TransactionAmount.Float(); ok {
			// Consumers: transaction amount stands in for monthly income.
			burden := 999.0
			if monthly > 0 {
				burden = loan / (monthly * 12)
			}
			s, matched := atMost(r.IncomeBands, burden)
			if !matched {
				s = math.Max(0.2, 1.0-(burden-0.6)/0.4*0.6)
			}
			a.add(s, r.LoanBurdenWeight)
		} else if revenue, ok := b.AnnualRevenue.Float(); ok {
			burden := 999.0
			if revenue > 0 {
				burden = loan / revenue
			}
			s, matched := atMost(r.RevenueBands, burden)
			if !matched {
				s = math.Max(0.2, 1.0-(burden-0.35)/0.35*0.6)
			}
			a.add(s, r.LoanBurdenWeight)
		}
	}

	if cr, ok := b.CurrentRatio.Float(); ok {
		s, matched := atLeast(r.CurrentRatioBands, cr)
		if !matched {
			s = clamp01(cr * 0.4)
		}
		a.add(s, r.CurrentRatioWeight)
	}

	if age, ok := b.Age.Float(); ok {
		s, matched := atLeast(r.AgeBands, age)
		if !matched {
			s = r.AgeFloor
		}
		a.add(s, r.StabilityWeight)
	} else if years, ok := b.YearsInBusiness.Float(); ok {
		a.add(clamp01(years/r.BusinessFullYears), r.StabilityWeight)
	}

	if raw, ok := b.CreditScoreRaw.Float(); ok {
		a.add(e.normCreditScore(raw), r.ScoreWeight)
	}

	return a.score()
}

// capitalScore rates leverage, equity cushion, and working capital.
func (e *Engine) capitalScore(b models.Borrower) float64 {
	r := e.rules.Capital
	var a acc

	if dte, ok := b.DebtToEquity.Float(); ok {
		s, matched := atMost(r.DebtEquityBands, dte)
		if !matched {
			s = math.Max(0, (4.0-dte)/4.0*0.4)
		}
		a.add(s, r.LeverageWeight)
	}

	if er, ok := b.EquityRatio.Float(); ok {
		a.add(clamp01(er*r.EquityScale), r.EquityWeight)
	}

	if wc, ok := b.WorkingCapital.Float(); ok {
		if ta, ok := b.TotalAssets.Float(); ok && ta != 0 {
			a.add(clamp01(wc/ta*r.WorkingCapScale), r.WorkingCapWeight)
		}
	}

	return a.score()
}

// collateralScore rates loan-to-value, asset coverage, and collateral
// quality class.
func (e *Engine) collateralScore(b models.Borrower) float64 {
	r := e.rules.Collateral
	var a acc

	if ltv, ok := b.LoanToValue.Float(); ok {
		s, matched := atMost(r.LTVBands, ltv)
		if !matched {
			s = math.Max(0, (1.5-ltv)/0.5*0.4)
		}
		a.add(s, r.LTVWeight)
	}

	if acr, ok := b.AssetCoverageRatio.Float(); ok {
		s, matched := atLeast(r.CoverageBands, acr)
		if !matched {
			s = clamp01(acr * 0.4)
		}
		a.add(s, r.CoverageWeight)
	}

	if ct, ok := b.CollateralType.Text(); ok {
		ct = strings.ToLower(ct)
		s := r.QualityDefault
	classes:
		for _, q := range r.Quality {
			for _, marker := range q.Markers {
				if strings.Contains(ct, marker) {
					s = q.Score
					break classes
				}
			}
		}
		a.add(s, r.QualityWeight)
	}

	return a.score()
}

// conditionsScore rates industry, borrower type, the borrower's economic
// position, and market activity.
func (e *Engine) conditionsScore(b models.Borrower) float64 {
	r := e.rules.Conditions
	var a acc

	if industry, ok := b.Industry.Text(); ok {
		s, found := r.IndustryScores[strings.ToLower(industry)]
		if !found {
			s = r.IndustryDefault
		}
		a.add(s, r.IndustryWeight)
	}

	if bt, ok := b.Type.Text(); ok {
		s, found := r.TypeScores[strings.ToLower(bt)]
		if !found {
			s = r.TypeDefault
		}
		a.add(s, r.TypeWeight)
	}

	if raw, ok := b.CreditScoreRaw.Float(); ok {
		s, matched := atLeast(r.EconomyBands, raw)
		if !matched {
			s = r.EconomyFloor
		}
		a.add(s, r.EconomyWeight)
	}

	if txn, ok := b.TransactionAmount.Float(); ok {
		s, matched := atLeast(r.TransactionBands, txn)
		if !matched {
			s = r.ActivityFloor
		}
		a.add(s, r.ActivityWeight)
	} else if revenue, ok := b.AnnualRevenue.Float(); ok {
		s, matched := atLeast(r.RevenueBands, revenue)
		if !matched {
			s = r.ActivityFloor
		}
		a.add(s, r.ActivityWeight)
	}

	return a.score()
}
