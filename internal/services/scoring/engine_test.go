package scoring

import (
	"context"
	"math"
	"testing"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

func borrower(row tabular.Row) models.Borrower {
	return models.BorrowerFromRow(row)
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCharacterSaturatesAtOne(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	b := borrower(tabular.Row{
		models.ColCreditHistoryYears: tabular.Num(12),
		models.ColPaymentDelays:      tabular.Num(0),
		models.ColCreditScoreRaw:     tabular.Num(850),
		models.ColManagementExp:      tabular.Num(20),
	})
	if got := e.characterScore(b); !almost(got, 1.0) {
		t.Fatalf("character = %v, want 1.0", got)
	}
}

func TestCollateralLTVTopBand(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	b := borrower(tabular.Row{models.ColLoanToValue: tabular.Num(0.5)})
	if got := e.collateralScore(b); !almost(got, 1.0) {
		t.Fatalf("collateral = %v, want 1.0 for ltv 0.5", got)
	}
}

func TestCapitalNeutralWithoutAttributes(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	b := borrower(tabular.Row{
		models.ColBorrowerName:  tabular.Str("No Financials Ltd"),
		models.ColPaymentDelays: tabular.Num(1),
	})
	if got := e.capitalScore(b); got != NeutralScore {
		t.Fatalf("capital = %v, want neutral %v", got, NeutralScore)
	}
}

// uniformRow scores 0.6 on all five components under the default rules.
func uniformRow() tabular.Row {
	return tabular.Row{
		models.ColPaymentDelays: tabular.Num(5),
		models.ColCurrentRatio:  tabular.Num(1.0),
		models.ColDebtToEquity:  tabular.Num(2.0),
		models.ColLoanToValue:   tabular.Num(1.0),
		models.ColIndustry:      tabular.Str("retail"),
	}
}

func TestUniformComponentsGiveUniformTotal(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	rec := e.ScoreOne(borrower(uniformRow()))

	for name, got := range map[string]float64{
		"character":  rec.Character,
		"capacity":   rec.Capacity,
		"capital":    rec.Capital,
		"collateral": rec.Collateral,
		"conditions": rec.Conditions,
	} {
		if !almost(got, 0.6) {
			t.Fatalf("%s = %v, want 0.6", name, got)
		}
	}
	if !almost(rec.Total, 0.6) {
		t.Fatalf("total = %v, want 0.6", rec.Total)
	}
}

func TestTotalIsLinearInWeights(t *testing.T) {
	rows := []tabular.Row{
		uniformRow(),
		{models.ColCreditScoreRaw: tabular.Num(720), models.ColLoanToValue: tabular.Num(0.9)},
		{},
	}
	for _, w := range []Weights{
		DefaultWeights(),
		{Character: 0.25, Capacity: 0.20, Capital: 0.30, Collateral: 0.10, Conditions: 0.30},
		{Character: 1},
	} {
		e := NewEngine(DefaultRuleConfig(), w)
		for _, row := range rows {
			rec := e.ScoreOne(borrower(row))
			want := w.Character*rec.Character + w.Capacity*rec.Capacity +
				w.Capital*rec.Capital + w.Collateral*rec.Collateral +
				w.Conditions*rec.Conditions
			if !almost(rec.Total, want) {
				t.Fatalf("total = %v, want weighted sum %v", rec.Total, want)
			}
		}
	}
}

func TestComponentsStayBounded(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	rows := []tabular.Row{
		{},
		uniformRow(),
		{
			models.ColPaymentDelays:  tabular.Num(40),
			models.ColDebtToEquity:   tabular.Num(50),
			models.ColLoanToValue:    tabular.Num(9),
			models.ColCreditScoreRaw: tabular.Num(100),
			models.ColEquityRatio:    tabular.Num(-3),
		},
		{
			models.ColLoanAmount:        tabular.Num(100000),
			models.ColTransactionAmount: tabular.Num(0),
			models.ColCurrentRatio:      tabular.Num(0.1),
			models.ColAge:               tabular.Num(19),
		},
	}
	for i, row := range rows {
		rec := e.ScoreOne(borrower(row))
		for name, got := range map[string]float64{
			"character":  rec.Character,
			"capacity":   rec.Capacity,
			"capital":    rec.Capital,
			"collateral": rec.Collateral,
			"conditions": rec.Conditions,
			"total":      rec.Total,
		} {
			if got < 0 || got > 1 {
				t.Fatalf("row %d: %s = %v out of [0,1]", i, name, got)
			}
		}
	}
}

func TestEmptyBorrowerScoresNeutralEverywhere(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	rec := e.ScoreOne(borrower(tabular.Row{}))
	if rec.Character != NeutralScore || rec.Capacity != NeutralScore ||
		rec.Capital != NeutralScore || rec.Collateral != NeutralScore ||
		rec.Conditions != NeutralScore {
		t.Fatalf("expected neutral components, got %+v", rec)
	}
	if !almost(rec.Total, NeutralScore*DefaultWeights().Sum()) {
		t.Fatalf("total = %v", rec.Total)
	}
}

func TestSetWeightsAffectsSubsequentCalls(t *testing.T) {
	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	b := borrower(uniformRow())

	e.SetWeights(Weights{Character: 1})
	rec := e.ScoreOne(b)
	if !almost(rec.Total, rec.Character) {
		t.Fatalf("total = %v, want character only %v", rec.Total, rec.Character)
	}
}

func TestScoreAllKeepsRowOrder(t *testing.T) {
	tbl := tabular.New(models.ColBorrowerID, models.ColPaymentDelays)
	for i := 1; i <= 25; i++ {
		tbl.Append(tabular.Row{
			models.ColBorrowerID:    tabular.Str("B-" + string(rune('A'+i%26))),
			models.ColPaymentDelays: tabular.Num(float64(i % 7)),
		})
	}

	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	e.SetParallelism(3)
	recs, err := e.ScoreAll(context.Background(), tbl)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(recs) != tbl.Len() {
		t.Fatalf("got %d records, want %d", len(recs), tbl.Len())
	}
	for i, rec := range recs {
		want := tbl.Rows[i].Get(models.ColBorrowerID).String()
		if rec.BorrowerID != want {
			t.Fatalf("row %d out of order: got %q want %q", i, rec.BorrowerID, want)
		}
	}
}

func TestScoreAllStopsOnCancelledContext(t *testing.T) {
	tbl := tabular.New(models.ColPaymentDelays)
	for i := 0; i < 10; i++ {
		tbl.Append(tabular.Row{models.ColPaymentDelays: tabular.Num(1)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(DefaultRuleConfig(), DefaultWeights())
	if _, err := e.ScoreAll(ctx, tbl); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestNormalizedWeightsSumToOne(t *testing.T) {
	w := Weights{Character: 2, Capacity: 3, Capital: 1, Collateral: 1, Conditions: 3}.Normalized()
	if !almost(w.Sum(), 1.0) {
		t.Fatalf("sum = %v, want 1", w.Sum())
	}
	zero := Weights{}
	if zero.Normalized() != zero {
		t.Fatalf("zero weights must come back unchanged")
	}
}

func TestScenarioCatalog(t *testing.T) {
	for _, sc := range Scenarios() {
		if sc.Weights.Sum() <= 0 {
			t.Fatalf("scenario %q has no weight mass", sc.Name)
		}
		if sc.Threshold <= 0 || sc.Threshold >= 1 {
			t.Fatalf("scenario %q threshold %v out of (0,1)", sc.Name, sc.Threshold)
		}
	}
	if _, ok := ScenarioByName("Normal Conditions"); !ok {
		t.Fatalf("Normal Conditions missing from catalog")
	}
	if _, ok := ScenarioByName("nope"); ok {
		t.Fatalf("unknown scenario must not resolve")
	}
}

func TestAssessTiers(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{0.85, "Very Low"},
		{0.8, "Very Low"},
		{0.75, "Low"},
		{0.65, "Medium"},
		{0.6, "Medium"},
		{0.45, "High"},
		{0.35, "Very High"},
	}
	for _, c := range cases {
		if got := Assess(c.score); got.Level != c.level {
			t.Fatalf("Assess(%v).Level = %q, want %q", c.score, got.Level, c.level)
		}
	}
	if Assess(0.35).Recommendation != "Reject or Require Additional Collateral" {
		t.Fatalf("unexpected recommendation for very high risk")
	}
}
