package models

// SegmentKind classifies a route segment by the kinds of its endpoints.
type SegmentKind int

const (
	// PickupLeg connects two pickup stops.
	PickupLeg SegmentKind = iota
	// DropoffLeg connects two dropoff stops.
	DropoffLeg
	// DisplacementLeg crosses the pickup/dropoff boundary.
	DisplacementLeg
)

func (k SegmentKind) String() string {
	switch k {
	case PickupLeg:
		return "pickup"
	case DropoffLeg:
		return "dropoff"
	default:
		return "displacement"
	}
}

// Segment is a directed edge between two consecutive stops on a route.
type Segment struct {
	Start    *Stop
	End      *Stop
	Distance float64
	Time     float64
	Kind     SegmentKind
}

func classifySegment(start, end *Stop) SegmentKind {
	switch {
	case start.Kind == Pickup && end.Kind == Pickup:
		return PickupLeg
	case start.Kind == Dropoff && end.Kind == Dropoff:
		return DropoffLeg
	default:
		return DisplacementLeg
	}
}

// NewSegment builds the segment between two stops, deriving its distance,
// traversal time and classification. A non-positive speed yields zero time.
func NewSegment(start, end *Stop, speed float64) *Segment {
	dist := Distance(start.Coordinate, end.Coordinate)
	var travelTime float64
	if speed > 0 {
		travelTime = dist / speed
	}
	return &Segment{
		Start:    start,
		End:      end,
		Distance: dist,
		Time:     travelTime,
		Kind:     classifySegment(start, end),
	}
}
