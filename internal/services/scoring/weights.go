package scoring

// Weights maps the five credit components to their share of the total
// score. The engine multiplies literally and never renormalizes: callers
// who want a [0,1] total must hand in weights that sum to 1.
type Weights struct {
	Character  float64 `json:"character"`
	Capacity   float64 `json:"capacity"`
	Capital    float64 `json:"capital"`
	Collateral float64 `json:"collateral"`
	Conditions float64 `json:"conditions"`
}

func (w Weights) Sum() float64 {
	return w.Character + w.Capacity + w.Capital + w.Collateral + w.Conditions
}

// Normalized scales the weights to sum to 1. Zero weights come back
// unchanged since there is nothing to distribute.
func (w Weights) Normalized() Weights {
	s := w.Sum()
	if s <= 0 {
		return w
	}
	return Weights{
		Character:  w.Character / s,
		Capacity:   w.Capacity / s,
		Capital:    w.Capital / s,
		Collateral: w.Collateral / s,
		Conditions: w.Conditions / s,
	}
}

// DefaultWeights is the normal-conditions distribution.
func DefaultWeights() Weights {
	return Weights{
		Character:  0.20,
		Capacity:   0.30,
		Capital:    0.25,
		Collateral: 0.15,
		Conditions: 0.10,
	}
}
