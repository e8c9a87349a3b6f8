// Package adminify is the convenience entry point for roster reconciliation.
// It wraps the pkg/reconcile engine for callers who already hold both record
// sequences in memory and want a report in one call.
package adminify

import (
	"context"

	"github.com/BLewisDesDev/ADMINify/pkg/reconcile"
)

// Reconcile matches the checked records against the reference records and
// returns the resulting report. Options configure the underlying matcher;
// with none given the defaults apply (threshold 0.85, batch size 50).
func Reconcile(ctx context.Context, reference, checked []reconcile.Pair, opts ...reconcile.Option) (*reconcile.Report, error) {
	matcher, err := reconcile.NewMatcher(opts...)
	if err != nil {
		return nil, err
	}
	return matcher.Run(ctx, reconcile.NewDataset(reference), reconcile.NewDataset(checked))
}
