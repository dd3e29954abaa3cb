package scoring

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"fivec_analysis/internal/models"
	"fivec_analysis/internal/tabular"

	"golang.org/x/sync/errgroup"
)

// NeutralScore is returned by a component with no usable attributes.
// It means "insufficient data", not high or low risk.
const NeutralScore = 0.5

// Engine computes 5C component scores and the weighted total. The weight
// set is held as one atomically swappable immutable value: SetWeights
// affects subsequent calls only, and a portfolio pass snapshots the weights
// once so concurrent updates can never produce a half-updated mix.
type Engine struct {
	rules   RuleConfig
	weights atomic.Pointer[Weights]
	limit   int
}

func NewEngine(rules RuleConfig, w Weights) *Engine {
	e := &Engine{rules: rules, limit: 4}
	e.weights.Store(&w)
	return e
}

// SetWeights replaces the weight set wholesale.
func (e *Engine) SetWeights(w Weights) { e.weights.Store(&w) }

func (e *Engine) CurrentWeights() Weights { return *e.weights.Load() }

// SetParallelism bounds the worker count used by ScoreAll.
func (e *Engine) SetParallelism(n int) {
	if n > 0 {
		e.limit = n
	}
}

// ScoreOne scores a single borrower with the current weights.
func (e *Engine) ScoreOne(b models.Borrower) models.ScoreRecord {
	return e.scoreWith(b, e.CurrentWeights())
}

// ScoreAll scores every row of the unified table. Rows are independent and
// immutable, so the portfolio is scored as a bounded parallel map; output
// order matches row order.
func (e *Engine) ScoreAll(ctx context.Context, t *tabular.Table) ([]models.ScoreRecord, error) {
	start := time.Now()
	w := e.CurrentWeights()
	out := make([]models.ScoreRecord, t.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, row := range t.Rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.scoreWith(models.BorrowerFromRow(row), w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Printf("[SCORE][DONE] rows=%d weight_sum=%.3f duration=%s", len(out), w.Sum(), time.Since(start))
	return out, nil
}

func (e *Engine) scoreWith(b models.Borrower, w Weights) models.ScoreRecord {
	rec := models.ScoreRecord{
		BorrowerID:   b.ID.String(),
		BorrowerName: b.Name.String(),
		BorrowerType: b.Type.String(),
		Industry:     b.Industry.String(),
	}
	if f, ok := b.LoanAmount.Float(); ok {
		rec.LoanAmount = &f
	}

	rec.Character = e.characterScore(b)
	rec.Capacity = e.capacityScore(b)
	rec.Capital = e.capitalScore(b)
	rec.Collateral = e.collateralScore(b)
	rec.Conditions = e.conditionsScore(b)

	rec.Total = w.Character*rec.Character +
		w.Capacity*rec.Capacity +
		w.Capital*rec.Capital +
		w.Collateral*rec.Collateral +
		w.Conditions*rec.Conditions
	return rec
}
