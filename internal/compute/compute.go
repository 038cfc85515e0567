// Package compute derives mixing diagnostics and risk categories for whole
// case tables, preserving input order.
package compute

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/mixing"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
)

// Row is a case row joined with its computed diagnostics. Unclassified rows
// keep their numeric CRSAuto internally but must render CRSLabel, which is
// "unclassified" for them.
type Row struct {
	refdata.Case
	mixing.Diag

	CRSAuto      int
	CRSLabel     string
	Unclassified bool
}

// One computes a single row.
func One(c refdata.Case, cl *crs.Classifier) Row {
	diag := mixing.Diagnostics(c.DeltaEV, c.VEV, c.TK)
	cat := cl.Classify(c.DeltaOpEV, diag.R)
	insufficient := crs.Insufficient(string(c.Status), c.DMC, c.Note)
	return Row{
		Case:         c,
		Diag:         diag,
		CRSAuto:      cat,
		CRSLabel:     crs.Label(cat, insufficient),
		Unclassified: insufficient,
	}
}

// Batch computes all cases with bounded concurrency. Output order matches
// input order regardless of scheduling.
func Batch(ctx context.Context, cases []refdata.Case, cl *crs.Classifier, concurrency int) ([]Row, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	rows := make([]Row, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = One(c, cl)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "compute: batch")
	}
	return rows, nil
}
