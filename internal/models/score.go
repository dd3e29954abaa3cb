package models

// ScoreRecord holds the five component scores and the weighted total for one
// borrower, plus the identity columns carried into exports. Records are
// freshly built per scoring call and never mutated afterwards.
type ScoreRecord struct {
	BorrowerID   string   `json:"borrower_id"`
	BorrowerName string   `json:"borrower_name,omitempty"`
	BorrowerType string   `json:"borrower_type,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	LoanAmount   *float64 `json:"loan_amount,omitempty"`

	Character  float64 `json:"character_score"`
	Capacity   float64 `json:"capacity_score"`
	Capital    float64 `json:"capital_score"`
	Collateral float64 `json:"collateral_score"`
	Conditions float64 `json:"conditions_score"`
	Total      float64 `json:"total_score"`
}
