package tabular

import (
	"math"
	"testing"
)

func TestCleanNameIsIdempotent(t *testing.T) {
	cases := map[string]string{
		"Customer ID":   "customer_id",
		"annual-income": "annual_income",
		" Loan Amount ": "loan_amount",
		"already_clean": "already_clean",
	}
	for raw, want := range cases {
		got := CleanName(raw)
		if got != want {
			t.Fatalf("CleanName(%q) = %q, want %q", raw, got, want)
		}
		if again := CleanName(got); again != got {
			t.Fatalf("CleanName not idempotent: %q -> %q", got, again)
		}
	}
}

func TestCleanColumnsFirstOccurrenceWins(t *testing.T) {
	tbl := New("Credit Score", "credit_score")
	r := Row{}
	r.Set("Credit Score", Str("720"))
	r.Set("credit_score", Str("640"))
	tbl.Append(r)

	// first occurrence has no cell here: the duplicate's value must not leak in
	gap := Row{}
	gap.Set("credit_score", Str("555"))
	tbl.Append(gap)

	tbl.CleanColumns()

	if len(tbl.Columns) != 1 || tbl.Columns[0] != "credit_score" {
		t.Fatalf("expected single credit_score column, got %v", tbl.Columns)
	}
	if got, _ := tbl.Rows[0].Get("credit_score").Text(); got != "720" {
		t.Fatalf("expected first occurrence to win, got %q", got)
	}
	if !tbl.Rows[1].Get("credit_score").IsMissing() {
		t.Fatalf("dropped duplicate's cell must not survive, got %v", tbl.Rows[1].Get("credit_score"))
	}

	// cleaning an already-clean table changes nothing
	tbl.CleanColumns()
	if len(tbl.Columns) != 1 {
		t.Fatalf("second pass changed columns: %v", tbl.Columns)
	}
	if got, _ := tbl.Rows[0].Get("credit_score").Text(); got != "720" {
		t.Fatalf("second pass changed cells, got %q", got)
	}
}

func TestCoerceNumericAllOrNothing(t *testing.T) {
	tbl := New("amount", "notes")
	tbl.Append(Row{"amount": Str("100"), "notes": Str("10")})
	tbl.Append(Row{"amount": Str("2,5"), "notes": Str("n/a")})

	tbl.CoerceNumeric()

	if f, ok := tbl.Rows[1].Get("amount").Float(); !ok || f != 2.5 {
		t.Fatalf("expected amount coerced with comma decimal, got %v ok=%v", f, ok)
	}
	// one non-numeric cell keeps the whole column textual
	if _, ok := tbl.Rows[0].Get("notes").Float(); ok {
		t.Fatalf("expected notes to stay textual")
	}
	if s, ok := tbl.Rows[0].Get("notes").Text(); !ok || s != "10" {
		t.Fatalf("expected notes cell untouched, got %q ok=%v", s, ok)
	}
}

func TestMedianSkipsMissing(t *testing.T) {
	tbl := New("v")
	tbl.Append(Row{"v": Num(1)})
	tbl.Append(Row{})
	tbl.Append(Row{"v": Num(3)})
	tbl.Append(Row{"v": Num(10)})

	m, ok := tbl.Median("v")
	if !ok || m != 3 {
		t.Fatalf("Median = %v ok=%v, want 3", m, ok)
	}

	if _, ok := tbl.Median("absent"); ok {
		t.Fatalf("expected no median for absent column")
	}
}

func TestConcatUnionsColumns(t *testing.T) {
	a := New("id", "income")
	a.Append(Row{"id": Num(1), "income": Num(50000)})
	b := New("id", "revenue")
	b.Append(Row{"id": Num(2), "revenue": Num(900000)})

	out := Concat(a, b)

	if len(out.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %v", out.Columns)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Len())
	}
	if !out.Rows[0].Get("revenue").IsMissing() {
		t.Fatalf("expected first row revenue missing")
	}
	if f, ok := out.Rows[1].Get("revenue").Float(); !ok || f != 900000 {
		t.Fatalf("expected second row revenue kept, got %v ok=%v", f, ok)
	}

	// rows are copies, mutating output must not touch the input
	out.Rows[0].Set("income", Num(0))
	if f, _ := a.Rows[0].Get("income").Float(); f != 50000 {
		t.Fatalf("Concat must copy rows, source was mutated")
	}
}

func TestValueCollapsesNonFinite(t *testing.T) {
	if !Num(math.NaN()).IsMissing() {
		t.Fatalf("NaN must be missing")
	}
	if !Num(math.Inf(1)).IsMissing() {
		t.Fatalf("+Inf must be missing")
	}
	if !Str("   ").IsMissing() {
		t.Fatalf("blank text must be missing")
	}
	if v := Num(1.5); v.String() != "1.5" {
		t.Fatalf("String() = %q, want 1.5", v.String())
	}
	if None().String() != "" {
		t.Fatalf("missing must render empty")
	}
}

func TestDropEmptyRowsAndColumns(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(Row{"a": Num(1)})
	tbl.Append(Row{})

	tbl.DropEmptyRows()
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.Len())
	}

	tbl.DropEmptyColumns()
	if len(tbl.Columns) != 1 || tbl.Columns[0] != "a" {
		t.Fatalf("expected only column a, got %v", tbl.Columns)
	}
}
