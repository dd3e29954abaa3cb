package scoring

// RiskAssessment is the five-tier classification of a total score.
type RiskAssessment struct {
	Level          string `json:"risk_level"`
	Recommendation string `json:"recommendation"`
	Color          string `json:"color"`
	Description    string `json:"description"`
}

// Assess maps a total score to its risk tier. Pure and stateless; tier
// cutoffs form a total order with no hysteresis.
func Assess(score float64) RiskAssessment {
	switch {
	case score >= 0.8:
		return RiskAssessment{
			Level:          "Very Low",
			Recommendation: "Approve",
			Color:          "green",
			Description:    "Excellent creditworthiness with minimal risk",
		}
	case score >= 0.7:
		return RiskAssessment{
			Level:          "Low",
			Recommendation: "Approve",
			Color:          "lightgreen",
			Description:    "Good creditworthiness with low risk",
		}
	case score >= 0.6:
		return RiskAssessment{
			Level:          "Medium",
			Recommendation: "Approve with Conditions",
			Color:          "yellow",
			Description:    "Acceptable risk with monitoring required",
		}
	case score >= 0.4:
		return RiskAssessment{
			Level:          "High",
			Recommendation: "Additional Review Required",
			Color:          "orange",
			Description:    "Higher risk requiring additional analysis",
		}
	default:
		return RiskAssessment{
			Level:          "Very High",
			Recommendation: "Reject or Require Additional Collateral",
			Color:          "red",
			Description:    "High risk of default",
		}
	}
}
