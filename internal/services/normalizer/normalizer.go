package normalizer

import (
	"log"
	"math/rand"
	"time"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"
)

// Normalizer reconciles two loosely-schematized raw tables into one unified
// borrower table. Every step is deterministic except financial-field
// synthesis, which draws from an explicitly seeded generator so runs can be
// reproduced by pinning the seed.
//
// Role inference falls back to positional assignment (first table consumer,
// second SME) when neither table carries a recognizable ID column. That
// fallback can silently misclassify malformed inputs; it is logged but
// never treated as an error.
type Normalizer struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config, seed int64) *Normalizer {
	return &Normalizer{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Normalize runs the full pipeline: role inference, cleaning, schema
// mapping, synthesis, schema union, concatenation, ratio computation,
// feature engineering, and imputation. Input tables are consumed; the
// returned unified table is the only survivor.
func (n *Normalizer) Normalize(tableA, tableB *tabular.Table) *tabular.Table {
	start := time.Now()
	log.Printf("[NORM][START] rows_a=%d rows_b=%d", tableA.Len(), tableB.Len())

	n.clean(tableA)
	n.clean(tableB)

	consumers, smes := inferRoles(tableA, tableB)

	mapColumns(consumers, consumerColumnMap)
	mapColumns(smes, smeColumnMap)

	n.synthesizeConsumer(consumers)
	n.synthesizeSME(smes)

	crossFill(consumers, smes, n.cfg.Synthesis.SMEDefaultAge)

	unified := tabular.Concat(consumers, smes)

	n.computeRatios(unified)
	n.engineerFeatures(unified)
	n.impute(unified)

	log.Printf("[NORM][DONE] rows=%d cols=%d missing_cells=%d duration=%s",
		unified.Len(), len(unified.Columns), unified.MissingCells(), time.Since(start))
	return unified
}

func (n *Normalizer) clean(t *tabular.Table) {
	t.CleanColumns()
	t.DropEmptyRows()
	t.DropEmptyColumns()
	t.CoerceNumeric()
}

// inferRoles decides which cleaned table holds consumers and which holds
// SMEs by looking for their distinguishing ID columns.
func inferRoles(a, b *tabular.Table) (consumers, smes *tabular.Table) {
	switch {
	case a.Has("customerid") && b.Has("businessid"):
		return a, b
	case a.Has("businessid") && b.Has("customerid"):
		return b, a
	default:
		log.Printf("[NORM][WARN] role markers ambiguous, defaulting to positional assignment")
		return a, b
	}
}

var consumerColumnMap = map[string]string{
	"customerid":        models.ColBorrowerID,
	"name":              models.ColBorrowerName,
	"creditscore":       models.ColCreditScoreRaw,
	"transactionamount": models.ColTransactionAmount,
	"loanamount":        models.ColLoanAmount,
	"latepayments":      models.ColPaymentDelays,
}

var smeColumnMap = map[string]string{
	"businessid":    models.ColBorrowerID,
	"businessname":  models.ColBorrowerName,
	"annualrevenue": models.ColAnnualRevenue,
	"creditscore":   models.ColCreditScoreRaw,
	"latepayments":  models.ColPaymentDelays,
}

// mapColumns renames known source-specific columns to the canonical schema.
// Unknown columns pass through untouched.
func mapColumns(t *tabular.Table, mapping map[string]string) {
	for old, canonical := range mapping {
		t.Rename(old, canonical)
	}
}

// crossFill supplies the semantic equivalents the schema union needs before
// concatenation: consumer income stands in for missing revenue, SME revenue
// for missing income, and SMEs get a nominal age. Everything else missing
// on one side stays an explicit gap.
func crossFill(consumers, smes *tabular.Table, smeAge float64) {
	if !consumers.Has(models.ColAnnualRevenue) && consumers.Has(models.ColAnnualIncome) {
		consumers.AddColumn(models.ColAnnualRevenue)
		for _, r := range consumers.Rows {
			if r.Get(models.ColAnnualRevenue).IsMissing() {
				r.Set(models.ColAnnualRevenue, r.Get(models.ColAnnualIncome))
			}
		}
	}
	if !smes.Has(models.ColAnnualIncome) && smes.Has(models.ColAnnualRevenue) {
		smes.AddColumn(models.ColAnnualIncome)
		for _, r := range smes.Rows {
			if r.Get(models.ColAnnualIncome).IsMissing() {
				r.Set(models.ColAnnualIncome, r.Get(models.ColAnnualRevenue))
			}
		}
	}
	if !smes.Has(models.ColAge) {
		smes.AddColumn(models.ColAge)
		for _, r := range smes.Rows {
			r.Set(models.ColAge, tabular.Num(smeAge))
		}
	}
}
