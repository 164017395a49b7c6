package view

import (
	"context"

	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchesView drives the delivery batch screen. Read-only: batches and their
// loan accounting are managed centrally.
type BatchesView struct {
	*machine
	client *upstream.Client

	batches []upstream.Batch
	stats   upstream.BatchStats
}

func NewBatchesView(client *upstream.Client) *BatchesView {
	return &BatchesView{machine: newMachine(), client: client}
}

func (v *BatchesView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		batches []upstream.Batch
		stats   *upstream.BatchStats
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		batches, err = v.client.ListBatches(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats, err = v.client.BatchStatistics(gctx)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.batches = batches
		v.stats = *stats
	})
}

func (v *BatchesView) Batches() []upstream.Batch {
	var out []upstream.Batch
	v.snapshot(func() { out = v.batches })
	return out
}

func (v *BatchesView) Stats() upstream.BatchStats {
	var out upstream.BatchStats
	v.snapshot(func() { out = v.stats })
	return out
}

// Detail fetches a single batch with its line items.
func (v *BatchesView) Detail(ctx context.Context, id uuid.UUID) (*upstream.Batch, error) {
	return v.client.GetBatch(ctx, id)
}
