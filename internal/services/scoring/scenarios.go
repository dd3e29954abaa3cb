package scoring

// Scenario bundles a named weight distribution with the risk threshold used
// by downstream segmentation. The threshold never enters score computation.
type Scenario struct {
	Name        string  `json:"name"`
	Weights     Weights `json:"weights"`
	Threshold   float64 `json:"threshold"`
	Description string  `json:"description"`
}

const ScenarioCustom = "Custom Configuration"

// Scenarios returns the fixed catalog of economic scenarios. Custom starts
// from the normal-conditions weights; callers normalize custom weights to
// sum 1 before handing them to the engine.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "Normal Conditions",
			Weights:     DefaultWeights(),
			Threshold:   0.60,
			Description: "Capacity as primary consideration. Capital > Collateral emphasizes capital strength before collateral.",
		},
		{
			Name:        "Crisis/Recession",
			Weights:     Weights{Character: 0.25, Capacity: 0.20, Capital: 0.30, Collateral: 0.10, Conditions: 0.30},
			Threshold:   0.70,
			Description: "Capital strength and external conditions dominate while repayment capacity is discounted.",
		},
		{
			Name:        "MSME Expansion (KUR Program)",
			Weights:     Weights{Character: 0.15, Capacity: 0.25, Capital: 0.20, Collateral: 0.30, Conditions: 0.10},
			Threshold:   0.55,
			Description: "Collateral-backed expansion lending with a relaxed approval threshold.",
		},
		{
			Name:        "Government Budget Efficiency",
			Weights:     Weights{Character: 0.20, Capacity: 0.30, Capital: 0.25, Collateral: 0.10, Conditions: 0.40},
			Threshold:   0.70,
			Description: "Conditions-heavy evaluation under tightened public spending.",
		},
		{
			Name:        ScenarioCustom,
			Weights:     DefaultWeights(),
			Threshold:   0.60,
			Description: "Caller-supplied weights, normalized to sum to 1 before scoring.",
		},
	}
}

// ScenarioByName looks a scenario up by its exact catalog name.
func ScenarioByName(name string) (Scenario, bool) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
