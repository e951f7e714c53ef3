// Package server exposes the planner and the network reference data over
// HTTP for the map front-end.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"metro-planner/internal/metro"
	"metro-planner/internal/network"
	"metro-planner/internal/planner"
)

const RequestIDHeader = "X-Request-ID"

// HTTPMetrics observes one finished request. route is the chi pattern, not
// the raw path.
type HTTPMetrics interface {
	ObserveHTTP(route string, code int, d time.Duration)
}

type Server struct {
	planner *planner.Planner
	origins []string
	metrics HTTPMetrics
}

func New(p *planner.Planner, allowedOrigins []string, m HTTPMetrics) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{planner: p, origins: allowedOrigins, metrics: m}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found", map[string]interface{}{"path": r.URL.Path})
	})

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/stations", s.listStations)
		r.Get("/stations/{id}", s.getStation)
		r.Get("/lines", s.listLines)
		r.Get("/lines/{name}", s.getLine)
		r.Get("/plan", s.plan)
	})
	return r
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Lines    int    `json:"lines"`
}

type StationResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Coordinates metro.Coordinates `json:"coordinates"`
	Lines       []string          `json:"lines"`
	Transfer    bool              `json:"transfer"`
	Terminal    bool              `json:"terminal"`
}

type Neighbour struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Lines []string `json:"lines"` // lines joining the two stations
}

type StationDetailResponse struct {
	StationResponse
	Neighbours []Neighbour `json:"neighbours"`
}

type StationsResponse struct {
	Stations []StationResponse `json:"stations"`
	Count    int               `json:"count"`
}

type LinesResponse struct {
	Lines []metro.Line `json:"lines"`
	Count int          `json:"count"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	g := s.planner.Graph()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Stations: g.Len(),
		Lines:    len(g.Lines()),
	})
}

// listStations returns every station alphabetically, as the trip selector
// shows them.
func (s *Server) listStations(w http.ResponseWriter, _ *http.Request) {
	g := s.planner.Graph()
	nodes := g.Nodes()
	out := make([]StationResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, stationResponse(g, n))
	}
	slices.SortFunc(out, func(a, b StationResponse) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	writeJSON(w, http.StatusOK, StationsResponse{Stations: out, Count: len(out)})
}

func (s *Server) getStation(w http.ResponseWriter, r *http.Request) {
	g := s.planner.Graph()
	id := chi.URLParam(r, "id")
	n, ok := g.Node(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown station", map[string]interface{}{"id": id})
		return
	}
	resp := StationDetailResponse{StationResponse: stationResponse(g, n), Neighbours: []Neighbour{}}
	for _, adj := range n.Adjacent {
		resp.Neighbours = append(resp.Neighbours, Neighbour{
			ID:    adj,
			Name:  g.StationName(adj),
			Lines: g.EdgeLines(id, adj),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func stationResponse(g *network.Graph, n network.StationNode) StationResponse {
	st, _ := g.Station(n.ID)
	lines := n.Lines
	if lines == nil {
		lines = []string{}
	}
	return StationResponse{
		ID:          n.ID,
		Name:        g.StationName(n.ID),
		Coordinates: st.Coordinates,
		Lines:       lines,
		Transfer:    n.Transfer(),
		Terminal:    st.Terminal,
	}
}

func (s *Server) listLines(w http.ResponseWriter, _ *http.Request) {
	lines := s.planner.Graph().Lines()
	writeJSON(w, http.StatusOK, LinesResponse{Lines: lines, Count: len(lines)})
}

func (s *Server) getLine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	l, ok := s.planner.Graph().Line(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown line", map[string]interface{}{"name": name})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to parameters are required", map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return
	}

	it, err := s.planner.Plan(from, to)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, it)
	case errors.Is(err, network.ErrUnknownStation):
		writeError(w, http.StatusNotFound, "unknown station", map[string]interface{}{
			"from":     from,
			"to":       to,
			"internal": err.Error(),
		})
	case errors.Is(err, network.ErrNoPathFound):
		writeError(w, http.StatusInternalServerError, "no path found", map[string]interface{}{
			"from": from,
			"to":   to,
		})
	default:
		writeError(w, http.StatusInternalServerError, "failed to plan trip", map[string]interface{}{
			"internal": err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string, details map[string]interface{}) {
	writeJSON(w, code, ErrorResponse{Error: msg, Details: details})
}

// requestID echoes the client's X-Request-ID or assigns a fresh UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		s.metrics.ObserveHTTP(route, code, time.Since(start))
	})
}
