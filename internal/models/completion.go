package models

// Topic completed ride records are published under.
const TopicRideCompletions = "ride_completions"

// PassengerRecord is one participant's entry in a completion record.
type PassengerRecord struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// RideCompletion is the record emitted for each ride when the simulator
// finishes replaying its route.
type RideCompletion struct {
	RideID        string            `json:"rideId"`
	FinishTime    float64           `json:"finishTime"`
	TotalDistance float64           `json:"totalDistance"`
	TotalDuration float64           `json:"totalDuration"`
	Efficiency    float64           `json:"efficiency"`
	StopCount     int               `json:"stopCount"`
	Path          []Point           `json:"path"`
	Passengers    []PassengerRecord `json:"passengers"`
}

// NewRideCompletion derives the completion record for a finished ride. The
// finish time is the anchor request's timestamp plus the route's total
// duration.
func NewRideCompletion(r *Ride) RideCompletion {
	passengers := make([]PassengerRecord, 0, len(r.Requests))
	for _, req := range r.Requests {
		passengers = append(passengers, PassengerRecord{ID: req.ID, State: req.State})
	}
	var start float64
	if anchor := r.Anchor(); anchor != nil {
		start = float64(anchor.Timestamp)
	}
	return RideCompletion{
		RideID:        r.ID,
		FinishTime:    start + r.TotalDuration,
		TotalDistance: r.TotalDistance,
		TotalDuration: r.TotalDuration,
		Efficiency:    r.Efficiency,
		StopCount:     r.StopCount(),
		Path:          r.Path(),
		Passengers:    passengers,
	}
}

// RideCompletionRow is the flattened parquet representation of a completion
// record; the coordinate path and passenger ids are serialized as
// space-separated strings.
type RideCompletionRow struct {
	RideID        string  `parquet:"name=ride_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	FinishTime    float64 `parquet:"name=finish_time, type=DOUBLE"`
	TotalDistance float64 `parquet:"name=total_distance, type=DOUBLE"`
	TotalDuration float64 `parquet:"name=total_duration, type=DOUBLE"`
	Efficiency    float64 `parquet:"name=efficiency, type=DOUBLE"`
	StopCount     int32   `parquet:"name=stop_count, type=INT32"`
	Path          string  `parquet:"name=path, type=BYTE_ARRAY, convertedtype=UTF8"`
	Passengers    string  `parquet:"name=passengers, type=BYTE_ARRAY, convertedtype=UTF8"`
}
