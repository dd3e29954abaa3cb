package scoring

// The band tables and lookup maps below are domain heuristics, kept as
// configuration so they can be recalibrated without touching scorer logic.
// Linear-decay branches past the last band stay inline in the scorers since
// their slopes are anchored to the band limits.

// Band pairs a threshold with the sub-score granted when it matches.
type Band struct {
	Limit float64
	Score float64
}

// atMost walks a ladder where lower values are better and returns the score
// of the first band with v <= Limit.
func atMost(bands []Band, v float64) (float64, bool) {
	for _, b := range bands {
		if v <= b.Limit {
			return b.Score, true
		}
	}
	return 0, false
}

// atLeast walks a ladder where higher values are better and returns the
// score of the first band with v >= Limit.
func atLeast(bands []Band, v float64) (float64, bool) {
	for _, b := range bands {
		if v >= b.Limit {
			return b.Score, true
		}
	}
	return 0, false
}

// QualityClass scores a collateral type by substring match.
type QualityClass struct {
	Markers []string
	Score   float64
}

type RuleConfig struct {
	// Nominal raw credit score range used for linear normalization.
	CreditScoreFloor float64
	CreditScoreCeil  float64

	Character  CharacterRule
	Capacity   CapacityRule
	Capital    CapitalRule
	Collateral CollateralRule
	Conditions ConditionsRule
}

type CharacterRule struct {
	HistoryWeight    float64
	HistoryFullYears float64

	DelaysWeight float64
	DelayBands   []Band

	ScoreWeight float64

	ExperienceWeight    float64
	ManagementFullYears float64
	BusinessFullYears   float64
}

type CapacityRule struct {
	LoanBurdenWeight float64
	IncomeBands      []Band
	RevenueBands     []Band

	CurrentRatioWeight float64
	CurrentRatioBands  []Band

	StabilityWeight   float64
	AgeBands          []Band
	AgeFloor          float64
	BusinessFullYears float64

	ScoreWeight float64
}

type CapitalRule struct {
	LeverageWeight  float64
	DebtEquityBands []Band

	EquityWeight float64
	EquityScale  float64

	WorkingCapWeight float64
	WorkingCapScale  float64
}

type CollateralRule struct {
	LTVWeight float64
	LTVBands  []Band

	CoverageWeight float64
	CoverageBands  []Band

	QualityWeight  float64
	Quality        []QualityClass
	QualityDefault float64
}

type ConditionsRule struct {
	IndustryWeight  float64
	IndustryScores  map[string]float64
	IndustryDefault float64

	TypeWeight  float64
	TypeScores  map[string]float64
	TypeDefault float64

	EconomyWeight float64
	EconomyBands  []Band
	EconomyFloor  float64

	ActivityWeight   float64
	TransactionBands []Band
	RevenueBands     []Band
	ActivityFloor    float64
}

// DefaultRuleConfig returns the calibrated sub-rule constants.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		CreditScoreFloor: 300,
		CreditScoreCeil:  850,

		Character: CharacterRule{
			HistoryWeight:    0.30,
			HistoryFullYears: 10,
			DelaysWeight:     0.35,
			DelayBands: []Band{
				{Limit: 0, Score: 1.0},
				{Limit: 2, Score: 0.8},
				{Limit: 5, Score: 0.6},
			},
			ScoreWeight:         0.25,
			ExperienceWeight:    0.10,
			ManagementFullYears: 15,
			BusinessFullYears:   10,
		},

		Capacity: CapacityRule{
			LoanBurdenWeight: 0.40,
			IncomeBands: []Band{
				{Limit: 0.2, Score: 1.0},
				{Limit: 0.4, Score: 0.8},
				{Limit: 0.6, Score: 0.6},
			},
			RevenueBands: []Band{
				{Limit: 0.15, Score: 1.0},
				{Limit: 0.25, Score: 0.8},
				{Limit: 0.35, Score: 0.6},
			},
			CurrentRatioWeight: 0.30,
			CurrentRatioBands: []Band{
				{Limit: 2.0, Score: 1.0},
				{Limit: 1.5, Score: 0.8},
				{Limit: 1.0, Score: 0.6},
			},
			StabilityWeight: 0.20,
			AgeBands: []Band{
				{Limit: 45, Score: 1.0},
				{Limit: 35, Score: 0.8},
				{Limit: 25, Score: 0.6},
			},
			AgeFloor:          0.4,
			BusinessFullYears: 10,
			ScoreWeight:       0.10,
		},

		Capital: CapitalRule{
			LeverageWeight: 0.40,
			DebtEquityBands: []Band{
				{Limit: 0.5, Score: 1.0},
				{Limit: 1.0, Score: 0.8},
				{Limit: 2.0, Score: 0.6},
			},
			EquityWeight:     0.35,
			EquityScale:      2,
			WorkingCapWeight: 0.25,
			WorkingCapScale:  4,
		},

		Collateral: CollateralRule{
			LTVWeight: 0.50,
			LTVBands: []Band{
				{Limit: 0.6, Score: 1.0},
				{Limit: 0.8, Score: 0.8},
				{Limit: 1.0, Score: 0.6},
			},
			CoverageWeight: 0.30,
			CoverageBands: []Band{
				{Limit: 2.0, Score: 1.0},
				{Limit: 1.5, Score: 0.8},
				{Limit: 1.0, Score: 0.6},
			},
			QualityWeight: 0.20,
			Quality: []QualityClass{
				{Markers: []string{"real_estate", "property"}, Score: 1.0},
				{Markers: []string{"equipment", "machinery"}, Score: 0.8},
				{Markers: []string{"inventory"}, Score: 0.6},
				{Markers: []string{"receivables"}, Score: 0.5},
			},
			QualityDefault: 0.4,
		},

		Conditions: ConditionsRule{
			IndustryWeight: 0.40,
			IndustryScores: map[string]float64{
				"healthcare": 0.9,
				"technology": 0.7,
				"retail":     0.6,
			},
			IndustryDefault: 0.5,
			TypeWeight:      0.30,
			TypeScores: map[string]float64{
				"consumer": 0.7,
				"sme":      0.6,
			},
			TypeDefault:   0.5,
			EconomyWeight: 0.20,
			EconomyBands: []Band{
				{Limit: 750, Score: 0.9},
				{Limit: 650, Score: 0.7},
				{Limit: 550, Score: 0.5},
			},
			EconomyFloor:   0.3,
			ActivityWeight: 0.10,
			TransactionBands: []Band{
				{Limit: 7000, Score: 0.8},
				{Limit: 4000, Score: 0.6},
				{Limit: 2000, Score: 0.5},
			},
			RevenueBands: []Band{
				{Limit: 3000000, Score: 0.8},
				{Limit: 1500000, Score: 0.6},
				{Limit: 500000, Score: 0.5},
			},
			ActivityFloor: 0.3,
		},
	}
}
