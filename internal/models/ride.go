package models

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by bounds-checked indexed accessors.
var ErrIndexOutOfRange = errors.New("index out of range")

// Ride is a group of requests served together by one vehicle, plus the route
// derived from them. The route visits every participant's pickup first, then
// every dropoff, both in the order the requests were added. Participant order
// is fixed once a request is added; the route is always regenerated from
// scratch by RebuildRoute, never patched incrementally.
//
// A ride owns its Segments (and the Stops they connect) but only references
// the Requests it serves.
type Ride struct {
	ID       string
	Requests []*Request
	Segments []*Segment

	TotalDistance float64
	TotalDuration float64
	Efficiency    float64
}

func NewRide(id string) *Ride {
	return &Ride{ID: id}
}

// AddRequest appends a participant. The route is not updated; call
// RebuildRoute afterwards.
func (r *Ride) AddRequest(req *Request) {
	r.Requests = append(r.Requests, req)
}

// Anchor is the first request added to the ride. It defines the ride's start
// time and the delay baseline for grouping. Nil for an empty ride.
func (r *Ride) Anchor() *Request {
	if len(r.Requests) == 0 {
		return nil
	}
	return r.Requests[0]
}

func (r *Ride) ParticipantCount() int {
	return len(r.Requests)
}

func (r *Ride) SegmentCount() int {
	return len(r.Segments)
}

// SegmentAt is the bounds-checked segment accessor.
func (r *Ride) SegmentAt(i int) (*Segment, error) {
	if i < 0 || i >= len(r.Segments) {
		return nil, fmt.Errorf("segment %d of %d: %w", i, len(r.Segments), ErrIndexOutOfRange)
	}
	return r.Segments[i], nil
}

// RebuildRoute discards the current route and regenerates it from the
// participant list: one pickup stop per participant in insertion order,
// followed by one dropoff stop per participant in the same order, joined by
// consecutive segments. Totals and efficiency are recomputed. A ride with
// k >= 1 participants ends up with exactly 2k-1 segments.
func (r *Ride) RebuildRoute(speed float64) {
	r.Segments = nil
	r.TotalDistance = 0
	r.TotalDuration = 0

	if len(r.Requests) == 0 {
		r.Efficiency = 0
		return
	}

	stops := make([]*Stop, 0, 2*len(r.Requests))
	for _, req := range r.Requests {
		stops = append(stops, &Stop{Coordinate: req.Origin, Kind: Pickup, PassengerID: req.ID})
	}
	for _, req := range r.Requests {
		stops = append(stops, &Stop{Coordinate: req.Destination, Kind: Dropoff, PassengerID: req.ID})
	}

	for i := 0; i+1 < len(stops); i++ {
		seg := NewSegment(stops[i], stops[i+1], speed)
		r.Segments = append(r.Segments, seg)
		r.TotalDistance += seg.Distance
		r.TotalDuration += seg.Time
	}

	r.recomputeEfficiency()
}

// recomputeEfficiency sets the ratio of summed direct trip distances to the
// routed distance. Zero total distance yields zero efficiency rather than an
// error; the value is not capped at 1.
func (r *Ride) recomputeEfficiency() {
	if r.TotalDistance == 0 {
		r.Efficiency = 0
		return
	}
	var sumDirect float64
	for _, req := range r.Requests {
		sumDirect += req.DirectDistance()
	}
	r.Efficiency = sumDirect / r.TotalDistance
}

// Path returns every stop coordinate in route order: the start of the first
// segment followed by the end of each segment. Empty for an empty route.
func (r *Ride) Path() []Point {
	if len(r.Segments) == 0 {
		return nil
	}
	path := make([]Point, 0, len(r.Segments)+1)
	path = append(path, r.Segments[0].Start.Coordinate)
	for _, seg := range r.Segments {
		path = append(path, seg.End.Coordinate)
	}
	return path
}

// StopCount is the number of stops on the route.
func (r *Ride) StopCount() int {
	if len(r.Segments) == 0 {
		return 0
	}
	return len(r.Segments) + 1
}
