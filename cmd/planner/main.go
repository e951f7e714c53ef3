package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"metro-planner/internal/config"
	"metro-planner/internal/loader"
	"metro-planner/internal/metro"
	"metro-planner/internal/metrics"
	"metro-planner/internal/network"
	"metro-planner/internal/planner"
	"metro-planner/internal/publisher"
	"metro-planner/internal/reload"
	"metro-planner/internal/server"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	net, err := loader.Load(ctx, cfg)
	if err != nil {
		log.Fatalf("load network: %v", err)
	}
	graph, err := network.Build(net.Lines, net.Stations)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}
	log.Printf("network ready: %d stations, %d edges, %d lines", graph.Len(), graph.EdgeCount(), len(graph.Lines()))

	// Metrics setup
	var mcol *metrics.Collector
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(cfg.StationMinutes, cfg.TransferMinutes)
		mcol.SetGraph(graph.Len(), graph.EdgeCount(), len(graph.Lines()))
		metricsSrv = mcol.Serve(cfg.MetricsAddr)
	}

	opts := []planner.Option{planner.WithMinutes(cfg.StationMinutes, cfg.TransferMinutes)}
	if mcol != nil {
		opts = append(opts, planner.WithMetrics(mcol))
	}
	p := planner.New(graph, opts...)

	if cfg.VerifyNetwork {
		start := time.Now()
		n, err := planner.VerifyConnectivity(ctx, p, runtime.GOMAXPROCS(0))
		if err != nil {
			log.Fatalf("verify network: %v", err)
		}
		log.Printf("verified %d trips in %s", n, time.Since(start).Round(time.Millisecond))
	}

	// Periodic reload picks up newly seeded data or a newer CITY import
	var reloader *reload.Reloader
	if cfg.NetworkReloadInterval > 0 {
		source := func(ctx context.Context) (metro.Network, error) { return loader.Load(ctx, cfg) }
		reloader = reload.New(source, p, net, cfg.NetworkReloadInterval, wrapReloadMetrics(mcol))
		reloader.Start(ctx)
		log.Printf("network reload every %s", cfg.NetworkReloadInterval)
	}

	// Optional NATS request/reply
	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer pub.Close()
		if err := pub.ServePlans(cfg.NATSPlanSubject, p.Plan); err != nil {
			log.Fatalf("nats subscribe: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(p, cfg.CORSAllowedOrigins, wrapHTTPMetrics(mcol)).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("http listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
			cancel()
		}
	}()

	// Block until context cancelled
	<-ctx.Done()
	if reloader != nil {
		reloader.Stop()
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	log.Println("shutdown complete")
}

// wrapPublisherMetrics keeps a nil Collector from becoming a non-nil interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return c
}

func wrapReloadMetrics(c *metrics.Collector) reload.Metrics {
	if c == nil {
		return nil
	}
	return c
}

func wrapHTTPMetrics(c *metrics.Collector) server.HTTPMetrics {
	if c == nil {
		return nil
	}
	return c
}
