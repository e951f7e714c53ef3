package planner

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"metro-planner/internal/network"
)

// VerifyConnectivity plans every ordered pair of stations, one origin per
// goroutine with at most workers running at once (unbounded when workers
// <= 0). It returns the number of successful plans and the first failure.
func VerifyConnectivity(ctx context.Context, p *Planner, workers int) (int, error) {
	g := p.Graph()
	if g == nil {
		return 0, fmt.Errorf("%w: planner has no graph", network.ErrInvalidNetwork)
	}
	nodes := g.Nodes()

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	var planned atomic.Int64
	for _, from := range nodes {
		from := from
		eg.Go(func() error {
			for _, to := range nodes {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := p.Plan(from.ID, to.ID); err != nil {
					return fmt.Errorf("plan %s -> %s: %w", from.ID, to.ID, err)
				}
				planned.Add(1)
			}
			return nil
		})
	}
	err := eg.Wait()
	return int(planned.Load()), err
}
