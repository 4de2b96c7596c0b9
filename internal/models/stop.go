package models

// StopKind distinguishes pickup stops from dropoff stops.
type StopKind int

const (
	Pickup StopKind = iota
	Dropoff
)

func (k StopKind) String() string {
	if k == Pickup {
		return "pickup"
	}
	return "dropoff"
}

// Stop is one visit on a ride's route. Stops are derived data: they are
// regenerated whenever the route is rebuilt and never persisted on their own.
type Stop struct {
	Coordinate  Point
	Kind        StopKind
	PassengerID string
}
