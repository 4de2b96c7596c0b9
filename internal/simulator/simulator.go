package simulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
	"github.com/mttcabral/ride-dispatch-simulator/internal/output"
	"github.com/mttcabral/ride-dispatch-simulator/internal/simulator/producers"
	"github.com/schollz/progressbar/v3"
)

// finishTimeTolerance bounds the allowed disagreement between the
// accumulated event time and anchor time + total duration.
const finishTimeTolerance = 1e-6

// Simulator owns one batch run: it groups the request workload into rides,
// seeds a start event per ride, then replays the schedule chronologically
// until the event queue drains. Runs are independent; no state survives a
// completed run.
type Simulator struct {
	Config       *models.Config
	Requests     []*models.Request
	RequestsByID map[string]*models.Request
	Rides        []*models.Ride
	EventQueue   *models.EventQueue
	CurrentTime  float64

	completions int
}

func NewSimulator(config *models.Config) *Simulator {
	return &Simulator{
		Config:       config,
		RequestsByID: make(map[string]*models.Request),
		EventQueue:   models.NewEventQueue(),
	}
}

// SetRequests installs a request workload directly, bypassing the input
// provider.
func (s *Simulator) SetRequests(requests []*models.Request) {
	s.Requests = requests
	s.RequestsByID = make(map[string]*models.Request, len(requests))
	for _, req := range requests {
		s.RequestsByID[req.ID] = req
	}
}

// RequestByID resolves a request from its id; rides store passenger ids as
// non-owning back-references.
func (s *Simulator) RequestByID(id string) (*models.Request, bool) {
	req, ok := s.RequestsByID[id]
	return req, ok
}

// Run executes the full pipeline: load requests, group them into rides,
// schedule the start events and drain the queue, emitting one completion
// record per ride.
func (s *Simulator) Run() error {
	if s.Requests == nil {
		requests, err := LoadRequests(s.Config)
		if err != nil {
			return fmt.Errorf("loading requests: %w", err)
		}
		s.SetRequests(requests)
	}

	sink, err := s.determineOutputDestination()
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	s.Rides = GroupRequests(s.Requests, s.Config)
	log.Printf("Grouped %d requests into %d rides", len(s.Requests), len(s.Rides))

	s.scheduleRides()

	totalEvents := 0
	for _, ride := range s.Rides {
		totalEvents += ride.SegmentCount() + 1
	}
	bar := progressbar.Default(int64(totalEvents), "simulating")

	for !s.EventQueue.IsEmpty() {
		event, err := s.EventQueue.Dequeue()
		if err != nil {
			if errors.Is(err, models.ErrEmptyQueue) {
				break
			}
			return err
		}
		if err := s.processEvent(event, sink); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if pg, ok := sink.(*output.PostgresOutput); ok {
		if err := pg.BatchInsertRequests(s.Requests); err != nil {
			return fmt.Errorf("persisting request workload: %w", err)
		}
	}

	log.Printf("Simulation finished at t=%.2f with %d completed rides", s.CurrentTime, s.completions)
	return nil
}

// scheduleRides seeds one start event per ride at its anchor request's
// timestamp with the stop cursor at zero.
func (s *Simulator) scheduleRides() {
	for _, ride := range s.Rides {
		anchor := ride.Anchor()
		if anchor == nil {
			continue
		}
		s.EventQueue.Enqueue(&models.RideEvent{
			Time:      float64(anchor.Timestamp),
			Ride:      ride,
			StopIndex: 0,
		})
	}
}

// processEvent advances one ride by one stop. An event whose cursor is still
// within the segment list schedules the arrival at the next stop; an event
// whose cursor has reached the segment count completes the ride.
func (s *Simulator) processEvent(event *models.RideEvent, sink OutputDestination) error {
	s.CurrentTime = event.Time
	ride := event.Ride

	if event.StopIndex < ride.SegmentCount() {
		segment, err := ride.SegmentAt(event.StopIndex)
		if err != nil {
			return err
		}
		s.EventQueue.Enqueue(&models.RideEvent{
			Time:      event.Time + segment.Time,
			Ride:      ride,
			StopIndex: event.StopIndex + 1,
		})
		return nil
	}

	return s.completeRide(ride, event, sink)
}

func (s *Simulator) completeRide(ride *models.Ride, event *models.RideEvent, sink OutputDestination) error {
	for _, req := range ride.Requests {
		req.UpdateState(models.StateCompleted)
	}

	record := models.NewRideCompletion(ride)
	if math.Abs(event.Time-record.FinishTime) > finishTimeTolerance {
		log.Printf("Ride %s: event time %.6f diverges from finish time %.6f",
			ride.ID, event.Time, record.FinishTime)
	}

	msg, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serializing completion for ride %s: %w", ride.ID, err)
	}
	if err := sink.WriteMessage(models.TopicRideCompletions, msg); err != nil {
		return fmt.Errorf("writing completion for ride %s: %w", ride.ID, err)
	}

	s.completions++
	return nil
}

// determineOutputDestination picks the sink named by the configuration.
// Console output is the default.
func (s *Simulator) determineOutputDestination() (OutputDestination, error) {
	switch s.Config.OutputDestination {
	case "", "console":
		return &ConsoleOutput{}, nil
	case "json":
		return NewJSONOutput(s.Config.OutputPath, s.Config.OutputFolder), nil
	case "csv":
		return NewCSVOutput(s.Config.OutputPath, s.Config.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(s.Config)
	case "kafka":
		return producers.NewSaramaProducer(s.Config)
	case "postgres":
		return output.NewPostgresOutput(&s.Config.Database)
	default:
		return nil, fmt.Errorf("unknown output destination %q", s.Config.OutputDestination)
	}
}
