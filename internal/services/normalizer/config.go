package normalizer

import "fivec_analysis/internal/models"

// Range bounds a uniform random multiplier used during synthesis.
type Range struct {
	Min float64
	Max float64
}

// SynthesisConfig documents every multiplier used to stand in for financial
// fields the source tables do not carry. Consumer figures scale off income
// and loan amounts, SME figures off annual revenue.
type SynthesisConfig struct {
	// Consumers: annual_income = transaction_amount * 12 * (1 + N(0, IncomeNoiseStdDev)).
	IncomeNoiseStdDev         float64
	ConsumerAssetsOfIncome    Range
	ConsumerLiabilitiesOfLoan Range
	ConsumerTotalOfCurrent    Range
	ConsumerEquityOfTotal     Range
	ConsumerHistoryGapMean    float64
	WorkingAgeStart           float64
	ManagementShare           float64

	SMELoanOfRevenue       Range
	SMEAssetsOfRevenue     Range
	SMELiabilitiesOfAssets Range
	SMETotalOfRevenue      Range
	SMEEquityOfTotal       Range
	SMETenureMean          float64
	SMEManagementExtraMean float64
	SMEHistoryMean         float64
	SMEDefaultAge          float64
}

// Config carries the normalization policy: synthesis multipliers, the
// industry risk lookup, the payment-history mapping, and the default tables
// applied during imputation.
type Config struct {
	Synthesis SynthesisConfig

	IndustryRisk        map[string]float64
	IndustryRiskDefault float64

	PaymentHistoryDelays  map[string]float64
	PaymentHistoryDefault float64

	// RatioColumns are imputed from RatioDefaults when listed there,
	// otherwise from the column's own median.
	RatioColumns  []string
	RatioDefaults map[string]float64

	CategoricalDefaults map[string]string
	NumericDefaults     map[string]float64

	// Fallback when management experience has no computable median.
	ManagementExpDefault float64
}

func DefaultConfig() Config {
	return Config{
		Synthesis: SynthesisConfig{
			IncomeNoiseStdDev:         0.3,
			ConsumerAssetsOfIncome:    Range{0.1, 0.5},
			ConsumerLiabilitiesOfLoan: Range{0.8, 1.2},
			ConsumerTotalOfCurrent:    Range{1.5, 3.0},
			ConsumerEquityOfTotal:     Range{0.2, 0.6},
			ConsumerHistoryGapMean:    3,
			WorkingAgeStart:           18,
			ManagementShare:           0.6,

			SMELoanOfRevenue:       Range{0.1, 0.3},
			SMEAssetsOfRevenue:     Range{0.2, 0.8},
			SMELiabilitiesOfAssets: Range{0.4, 1.2},
			SMETotalOfRevenue:      Range{0.8, 2.5},
			SMEEquityOfTotal:       Range{0.2, 0.7},
			SMETenureMean:          8,
			SMEManagementExtraMean: 3,
			SMEHistoryMean:         5,
			SMEDefaultAge:          35,
		},

		IndustryRisk: map[string]float64{
			"technology":    0.3,
			"healthcare":    0.2,
			"manufacturing": 0.4,
			"retail":        0.6,
			"construction":  0.7,
			"hospitality":   0.8,
			"oil_gas":       0.9,
		},
		IndustryRiskDefault: 0.5,

		PaymentHistoryDelays: map[string]float64{
			"excellent": 0,
			"good":      1,
			"fair":      3,
			"poor":      6,
			"bad":       12,
		},
		PaymentHistoryDefault: 3,

		RatioColumns: []string{
			models.ColCurrentRatio,
			models.ColQuickRatio,
			models.ColDebtToEquity,
			models.ColDebtServiceCover,
			models.ColReturnOnAssets,
			models.ColReturnOnEquity,
			models.ColAssetTurnover,
			models.ColEquityRatio,
		},
		RatioDefaults: map[string]float64{
			models.ColCurrentRatio:     1.2,
			models.ColDebtToEquity:     1.0,
			models.ColDebtServiceCover: 1.1,
			models.ColReturnOnAssets:   0.05,
			models.ColReturnOnEquity:   0.05,
		},

		CategoricalDefaults: map[string]string{
			models.ColIndustry:       "services",
			models.ColCollateralType: "business_assets",
			"market_position":        "moderate",
			"economic_outlook":       "stable",
		},
		NumericDefaults: map[string]float64{
			models.ColYearsInBusiness:    5,
			models.ColManagementExp:      8,
			models.ColCreditHistoryYears: 3,
			models.ColPaymentDelays:      2,
			"revenue_growth":             0.03,
			"industry_growth":            0.02,
			models.ColLoanToValue:        0.8,
			models.ColAssetCoverageRatio: 1.2,
		},

		ManagementExpDefault: 5,
	}
}
