package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"metro-planner/internal/itinerary"
	"metro-planner/internal/planner"
)

// ItinerarySubjectPrefix is prepended to <from>.<to> when broadcasting plans.
const ItinerarySubjectPrefix = "itineraries"

type NATSPublisher struct {
	nc          *nats.Conn
	logSubjects bool
	metrics     PublisherMetrics
}

type PublisherMetrics interface {
	NATSRequestInc()
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

func NewNATSPublisher(url string, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("metro-planner"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, logSubjects: logSubjects, metrics: m}, nil
}

// Close drains subscriptions and pending publishes before closing.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

type PlanRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PlanReply carries either an itinerary or an error. Code is one of the
// planner result labels.
type PlanReply struct {
	Itinerary *itinerary.Itinerary `json:"itinerary,omitempty"`
	Error     string               `json:"error,omitempty"`
	Code      string               `json:"code"`
}

// PlanFunc is satisfied by (*planner.Planner).Plan.
type PlanFunc func(from, to string) (*itinerary.Itinerary, error)

// ServePlans answers PlanRequests on subject. Successful plans are also
// broadcast with PublishItinerary.
func (p *NATSPublisher) ServePlans(subject string, plan PlanFunc) error {
	_, err := p.nc.Subscribe(subject, func(m *nats.Msg) {
		if p.metrics != nil {
			p.metrics.NATSRequestInc()
		}
		reply := handlePlan(m.Data, plan)
		b, err := json.Marshal(reply)
		if err != nil {
			log.Printf("nats marshal reply: %v", err)
			return
		}
		if m.Reply != "" {
			if err := m.Respond(b); err != nil {
				log.Printf("nats respond subject=%s: %v", m.Reply, err)
			}
		}
		if reply.Itinerary != nil {
			if err := p.PublishItinerary(reply.Itinerary); err != nil {
				log.Printf("nats publish itinerary: %v", err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	log.Printf("nats serving plans on %s", subject)
	return nil
}

func handlePlan(data []byte, plan PlanFunc) PlanReply {
	var req PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return PlanReply{Error: "invalid request: " + err.Error(), Code: planner.ResultError}
	}
	req.From, req.To = strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if req.From == "" || req.To == "" {
		return PlanReply{Error: "from and to are required", Code: planner.ResultError}
	}
	it, err := plan(req.From, req.To)
	if err != nil {
		return PlanReply{Error: err.Error(), Code: planner.Result(err)}
	}
	if it == nil {
		return PlanReply{Error: "empty itinerary", Code: planner.ResultError}
	}
	return PlanReply{Itinerary: it, Code: planner.ResultOK}
}

// ItinerarySubject is the broadcast subject for a trip.
func ItinerarySubject(from, to string) string {
	return fmt.Sprintf("%s.%s.%s", ItinerarySubjectPrefix, subjectToken(from), subjectToken(to))
}

func (p *NATSPublisher) PublishItinerary(it *itinerary.Itinerary) error {
	subject := ItinerarySubject(it.Origin, it.Destination)
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	if p.logSubjects {
		log.Printf("nats publish subject=%s", subject)
	}
	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
