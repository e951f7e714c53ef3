package metrics

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"metro-planner/internal/itinerary"
)

type Collector struct {
	reg *prometheus.Registry

	Plans              *prometheus.CounterVec // result label: ok|unknown_station|no_path|error
	PlanDuration       prometheus.Histogram
	ItineraryMinutes   prometheus.Histogram
	ItineraryTransfers prometheus.Histogram

	GraphStations prometheus.Gauge
	GraphEdges    prometheus.Gauge
	GraphLines    prometheus.Gauge

	NetworkReloads *prometheus.CounterVec // result: updated|unchanged|error

	HTTPRequests *prometheus.CounterVec // route, code
	HTTPDuration *prometheus.HistogramVec

	NATSRequests    prometheus.Counter
	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram

	StationMinutes  prometheus.Gauge
	TransferMinutes prometheus.Gauge
}

func NewCollector(stationMinutes, transferMinutes int) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plans_total",
			Help: "Trip plans computed, by result.",
		}, []string{"result"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "Duration of shortest-path search plus formatting.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 15),
		}),
		ItineraryMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_itinerary_minutes",
			Help:    "Estimated total minutes of returned itineraries.",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		ItineraryTransfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_itinerary_transfers",
			Help:    "Line changes in returned itineraries.",
			Buckets: prometheus.LinearBuckets(0, 1, 5),
		}),
		GraphStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_graph_stations",
			Help: "Stations in the loaded network graph.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_graph_edges",
			Help: "Adjacent station pairs in the loaded network graph.",
		}),
		GraphLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_graph_lines",
			Help: "Lines in the loaded network graph.",
		}),
		NetworkReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_network_reloads_total",
			Help: "Network reload attempts, by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_http_requests_total",
			Help: "HTTP requests served, by route pattern and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}, []string{"route"}),
		NATSRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_requests_total",
			Help: "Plan requests received over NATS.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		StationMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_station_minutes",
			Help: "Minutes charged per hop.",
		}),
		TransferMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_transfer_minutes",
			Help: "Minutes charged per line change.",
		}),
	}

	reg.MustRegister(
		c.Plans, c.PlanDuration, c.ItineraryMinutes, c.ItineraryTransfers,
		c.GraphStations, c.GraphEdges, c.GraphLines, c.NetworkReloads,
		c.HTTPRequests, c.HTTPDuration,
		c.NATSRequests, c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
		c.StationMinutes, c.TransferMinutes,
	)

	c.StationMinutes.Set(float64(stationMinutes))
	c.TransferMinutes.Set(float64(transferMinutes))

	return c
}

// ObservePlan records one planner call. it is nil on failure.
func (c *Collector) ObservePlan(result string, d time.Duration, it *itinerary.Itinerary) {
	c.Plans.WithLabelValues(result).Inc()
	c.PlanDuration.Observe(d.Seconds())
	if it != nil {
		c.ItineraryMinutes.Observe(float64(it.TotalMinutes))
		c.ItineraryTransfers.Observe(float64(it.TransferCount))
	}
}

// SetGraph publishes the size of the loaded network.
func (c *Collector) SetGraph(stations, edges, lines int) {
	c.GraphStations.Set(float64(stations))
	c.GraphEdges.Set(float64(edges))
	c.GraphLines.Set(float64(lines))
}

func (c *Collector) NetworkReloadInc(result string) { c.NetworkReloads.WithLabelValues(result).Inc() }

func (c *Collector) ObserveHTTP(route string, code int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	c.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (c *Collector) NATSRequestInc()                { c.NATSRequests.Inc() }
func (c *Collector) NATSPublishedInc()              { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc()             { c.NATSPublishErrs.Inc() }
func (c *Collector) PublishObserve(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
