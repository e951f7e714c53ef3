// Package reload periodically re-reads the network reference data and swaps
// a rebuilt graph into the planner when it changed.
package reload

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"metro-planner/internal/metro"
	"metro-planner/internal/network"
)

// Reload results reported to Metrics.
const (
	ResultUpdated   = "updated"
	ResultUnchanged = "unchanged"
	ResultError     = "error"
)

// Source loads the current reference data, e.g. loader.Load bound to a config.
type Source func(ctx context.Context) (metro.Network, error)

// Target receives every rebuilt graph. *planner.Planner satisfies it.
type Target interface {
	SetGraph(g *network.Graph)
}

type Metrics interface {
	NetworkReloadInc(result string)
	SetGraph(stations, edges, lines int)
}

type Reloader struct {
	source   Source
	target   Target
	interval time.Duration
	metrics  Metrics

	mu      sync.Mutex
	current metro.Network

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Reloader that treats current as the network already served.
func New(source Source, target Target, current metro.Network, interval time.Duration, m Metrics) *Reloader {
	return &Reloader{source: source, target: target, current: current, interval: interval, metrics: m}
}

// Reload loads, builds and swaps in the network once. A failed load or an
// invalid network leaves the served graph untouched.
func (r *Reloader) Reload(ctx context.Context) (bool, error) {
	n, err := r.source(ctx)
	if err != nil {
		r.observe(ResultError)
		return false, fmt.Errorf("load network: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if reflect.DeepEqual(n, r.current) {
		r.observe(ResultUnchanged)
		return false, nil
	}
	g, err := network.Build(n.Lines, n.Stations)
	if err != nil {
		r.observe(ResultError)
		return false, err
	}
	r.target.SetGraph(g)
	r.current = n
	r.observe(ResultUpdated)
	if r.metrics != nil {
		r.metrics.SetGraph(g.Len(), g.EdgeCount(), len(g.Lines()))
	}
	log.Printf("network reloaded: %d stations, %d edges, %d lines", g.Len(), g.EdgeCount(), len(g.Lines()))
	return true, nil
}

func (r *Reloader) observe(result string) {
	if r.metrics != nil {
		r.metrics.NetworkReloadInc(result)
	}
}

// Start reloads every interval until Stop or parent is cancelled. A
// non-positive interval disables reloading.
func (r *Reloader) Start(parent context.Context) {
	if r.interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.Reload(ctx); err != nil {
					log.Printf("network reload error: %v", err)
				}
			}
		}
	}()
}

func (r *Reloader) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}
