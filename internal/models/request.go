package models

// Lifecycle states of a ride request.
const (
	StateRequested      = "Requested"
	StateIndividualRide = "IndividualRide"
	StateCombinedRide   = "CombinedRide"
	StateCompleted      = "Completed"
)

// Request is a single passenger's ride request. Timestamps are in simulation
// time units. RideID is a non-owning back-reference to the ride the request
// was grouped into; it is empty until grouping assigns one.
type Request struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"`
	Origin      Point  `json:"origin"`
	Destination Point  `json:"destination"`
	State       string `json:"state"`
	RideID      string `json:"rideId,omitempty"`
}

func NewRequest(id string, timestamp int64, origin, destination Point) *Request {
	return &Request{
		ID:          id,
		Timestamp:   timestamp,
		Origin:      origin,
		Destination: destination,
		State:       StateRequested,
	}
}

// DirectDistance is the straight-line origin to destination distance.
func (r *Request) DirectDistance() float64 {
	return Distance(r.Origin, r.Destination)
}

func (r *Request) UpdateState(state string) {
	r.State = state
}
