package normalizer

import (
	"testing"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

func rawConsumerTable() *tabular.Table {
	t := tabular.New("CustomerID", "Name", "Age", "CreditScore", "TransactionAmount", "LoanAmount", "LatePayments")
	t.Append(tabular.Row{
		"CustomerID":        tabular.Str("C001"),
		"Name":              tabular.Str("Andi"),
		"Age":               tabular.Str("42"),
		"CreditScore":       tabular.Str("710"),
		"TransactionAmount": tabular.Str("5200"),
		"LoanAmount":        tabular.Str("25000"),
		"LatePayments":      tabular.Str("1"),
	})
	t.Append(tabular.Row{
		"CustomerID":        tabular.Str("C002"),
		"Name":              tabular.Str("Budi"),
		"Age":               tabular.Str("29"),
		"CreditScore":       tabular.Str("605"),
		"TransactionAmount": tabular.Str("2100"),
		"LoanAmount":        tabular.Str("12000"),
		"LatePayments":      tabular.Str("4"),
	})
	return t
}

func rawSMETable() *tabular.Table {
	t := tabular.New("BusinessID", "BusinessName", "AnnualRevenue", "CreditScore", "LatePayments", "Industry")
	t.Append(tabular.Row{
		"BusinessID":    tabular.Str("B001"),
		"BusinessName":  tabular.Str("Warung Maju"),
		"AnnualRevenue": tabular.Str("800000"),
		"CreditScore":   tabular.Str("680"),
		"LatePayments":  tabular.Str("2"),
		"Industry":      tabular.Str("Retail"),
	})
	t.Append(tabular.Row{
		"BusinessID":    tabular.Str("B002"),
		"BusinessName":  tabular.Str("Klinik Sehat"),
		"AnnualRevenue": tabular.Str("2400000"),
		"CreditScore":   tabular.Str("735"),
		"LatePayments":  tabular.Str("0"),
		"Industry":      tabular.Str("Healthcare"),
	})
	return t
}

func TestNormalizeUnifiesBothSources(t *testing.T) {
	n := New(DefaultConfig(), 42)
	out := n.Normalize(rawConsumerTable(), rawSMETable())

	if out.Len() != 4 {
		t.Fatalf("expected 4 unified rows, got %d", out.Len())
	}

	wantTypes := []string{models.TypeConsumer, models.TypeConsumer, models.TypeSME, models.TypeSME}
	for i, want := range wantTypes {
		if got, _ := out.Rows[i].Get(models.ColBorrowerType).Text(); got != want {
			t.Fatalf("row %d borrower_type = %q, want %q", i, got, want)
		}
	}

	if got, _ := out.Rows[0].Get(models.ColBorrowerID).Text(); got != "C001" {
		t.Fatalf("row 0 borrower_id = %q, want C001", got)
	}
	if got, _ := out.Rows[2].Get(models.ColBorrowerID).Text(); got != "B001" {
		t.Fatalf("row 2 borrower_id = %q, want B001", got)
	}

	// synthesized consumer income is anchored at transaction_amount * 12
	income, ok := out.Rows[0].Get(models.ColAnnualIncome).Float()
	if !ok || income <= 0 {
		t.Fatalf("expected synthesized annual_income, got %v ok=%v", income, ok)
	}

	// credit scores survive as numbers after coercion
	if f, ok := out.Rows[3].Get(models.ColCreditScoreRaw).Float(); !ok || f != 735 {
		t.Fatalf("credit_score_raw = %v ok=%v, want 735", f, ok)
	}

	// every row leaves with the core ratio columns populated
	for i, r := range out.Rows {
		if r.Get(models.ColCurrentRatio).IsMissing() {
			t.Fatalf("row %d current_ratio missing after imputation", i)
		}
		if r.Get(models.ColDebtToEquity).IsMissing() {
			t.Fatalf("row %d debt_to_equity missing after imputation", i)
		}
	}
}

func TestNormalizeDetectsSwappedInputs(t *testing.T) {
	n := New(DefaultConfig(), 42)
	out := n.Normalize(rawSMETable(), rawConsumerTable())

	if got, _ := out.Rows[0].Get(models.ColBorrowerType).Text(); got != models.TypeConsumer {
		t.Fatalf("row 0 borrower_type = %q, want consumer despite swapped inputs", got)
	}
	if got, _ := out.Rows[out.Len()-1].Get(models.ColBorrowerType).Text(); got != models.TypeSME {
		t.Fatalf("last row borrower_type = %q, want sme", got)
	}
}

func TestNormalizeIsReproducibleBySeed(t *testing.T) {
	a := New(DefaultConfig(), 7).Normalize(rawConsumerTable(), rawSMETable())
	b := New(DefaultConfig(), 7).Normalize(rawConsumerTable(), rawSMETable())

	for _, col := range []string{models.ColAnnualIncome, models.ColTotalAssets, models.ColTotalEquity} {
		for i := range a.Rows {
			av, aok := a.Rows[i].Get(col).Float()
			bv, bok := b.Rows[i].Get(col).Float()
			if aok != bok || av != bv {
				t.Fatalf("row %d col %s differs between equally seeded runs: %v vs %v", i, col, av, bv)
			}
		}
	}
}

func TestComputeRatiosZeroDenominator(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New(models.ColCurrentAssets, models.ColCurrentLiabilities)
	tbl.Append(tabular.Row{
		models.ColCurrentAssets:      tabular.Num(5000),
		models.ColCurrentLiabilities: tabular.Num(0),
	})
	tbl.Append(tabular.Row{
		models.ColCurrentAssets:      tabular.Num(6000),
		models.ColCurrentLiabilities: tabular.Num(3000),
	})

	n.computeRatios(tbl)

	if !tbl.Rows[0].Get(models.ColCurrentRatio).IsMissing() {
		t.Fatalf("division by zero must yield a missing cell")
	}
	if f, _ := tbl.Rows[1].Get(models.ColCurrentRatio).Float(); f != 2 {
		t.Fatalf("current_ratio = %v, want 2", f)
	}

	// the gap then takes the documented default
	n.impute(tbl)
	if f, _ := tbl.Rows[0].Get(models.ColCurrentRatio).Float(); f != 1.2 {
		t.Fatalf("imputed current_ratio = %v, want 1.2", f)
	}
}

func TestEngineerFeaturesTextNormalization(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New("credit_history", "payment_history")
	tbl.Append(tabular.Row{
		"credit_history":  tabular.Str("7 years"),
		"payment_history": tabular.Str("Poor"),
	})
	tbl.Append(tabular.Row{
		"credit_history":  tabular.Str("unknown"),
		"payment_history": tabular.Str("average"),
	})

	n.engineerFeatures(tbl)

	if f, _ := tbl.Rows[0].Get(models.ColCreditHistoryYears).Float(); f != 7 {
		t.Fatalf("credit_history_years = %v, want 7", f)
	}
	if f, _ := tbl.Rows[1].Get(models.ColCreditHistoryYears).Float(); f != 0 {
		t.Fatalf("unparsable credit history must become 0, got %v", f)
	}
	if f, _ := tbl.Rows[0].Get(models.ColPaymentDelays).Float(); f != 6 {
		t.Fatalf("payment_delays for poor = %v, want 6", f)
	}
	if f, _ := tbl.Rows[1].Get(models.ColPaymentDelays).Float(); f != 3 {
		t.Fatalf("payment_delays for unknown label = %v, want default 3", f)
	}
}

func TestEngineerFeaturesFillsBorrowerIDAndMedianExperience(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New(models.ColBorrowerID, models.ColManagementExp)
	tbl.Append(tabular.Row{models.ColManagementExp: tabular.Num(4)})
	tbl.Append(tabular.Row{models.ColBorrowerID: tabular.Str("X-9"), models.ColManagementExp: tabular.Num(10)})
	tbl.Append(tabular.Row{})

	n.engineerFeatures(tbl)

	if f, _ := tbl.Rows[0].Get(models.ColBorrowerID).Float(); f != 1 {
		t.Fatalf("row 0 borrower_id = %v, want sequential 1", f)
	}
	if s, _ := tbl.Rows[1].Get(models.ColBorrowerID).Text(); s != "X-9" {
		t.Fatalf("existing borrower_id must survive, got %q", s)
	}
	if f, _ := tbl.Rows[2].Get(models.ColManagementExp).Float(); f != 7 {
		t.Fatalf("management_experience median fill = %v, want 7", f)
	}
}

func TestSynthesizeSMECollapsesOneHotIndustry(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New(models.ColAnnualRevenue, "industry_healthcare", "industry_technology")
	tbl.Append(tabular.Row{
		models.ColAnnualRevenue: tabular.Num(500000),
		"industry_healthcare":   tabular.Num(1),
	})
	tbl.Append(tabular.Row{
		models.ColAnnualRevenue: tabular.Num(900000),
		"industry_technology":   tabular.Num(1),
	})
	tbl.Append(tabular.Row{
		models.ColAnnualRevenue: tabular.Num(100000),
	})

	n.synthesizeSME(tbl)

	want := []string{"healthcare", "technology", "other"}
	for i, w := range want {
		if got, _ := tbl.Rows[i].Get(models.ColIndustry).Text(); got != w {
			t.Fatalf("row %d industry = %q, want %q", i, got, w)
		}
	}
}

func TestSynthesisNeverOverwrites(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New(models.ColTransactionAmount, models.ColAnnualIncome)
	tbl.Append(tabular.Row{
		models.ColTransactionAmount: tabular.Num(4000),
		models.ColAnnualIncome:      tabular.Num(60000),
	})

	n.synthesizeConsumer(tbl)

	if f, _ := tbl.Rows[0].Get(models.ColAnnualIncome).Float(); f != 60000 {
		t.Fatalf("existing annual_income must survive synthesis, got %v", f)
	}
}

func TestImputeNumericAndCategoricalDefaults(t *testing.T) {
	n := New(DefaultConfig(), 1)
	tbl := tabular.New(models.ColLoanToValue, models.ColIndustry)
	tbl.Append(tabular.Row{})

	n.impute(tbl)

	if f, _ := tbl.Rows[0].Get(models.ColLoanToValue).Float(); f != 0.8 {
		t.Fatalf("loan_to_value default = %v, want 0.8", f)
	}
	if s, _ := tbl.Rows[0].Get(models.ColIndustry).Text(); s != "services" {
		t.Fatalf("industry default = %q, want services", s)
	}
}

func TestSummarize(t *testing.T) {
	n := New(DefaultConfig(), 42)
	out := n.Normalize(rawConsumerTable(), rawSMETable())

	sum := Summarize(out)
	if sum.TotalRecords != 4 {
		t.Fatalf("TotalRecords = %d, want 4", sum.TotalRecords)
	}
	if sum.TotalColumns != len(out.Columns) {
		t.Fatalf("TotalColumns = %d, want %d", sum.TotalColumns, len(out.Columns))
	}
	cr, ok := sum.KeyMetrics[models.ColCurrentRatio]
	if !ok {
		t.Fatalf("expected current_ratio in key metrics")
	}
	if cr.Mean <= 0 {
		t.Fatalf("current_ratio mean = %v, want > 0", cr.Mean)
	}
}
