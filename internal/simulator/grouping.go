package simulator

import (
	"math"

	"github.com/lucsky/cuid"
	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

// GroupRequests partitions the ordered request list into rides with a single
// greedy forward pass. Each ride is anchored at the request under the
// cursor, then extended with following requests while every constraint
// holds; the first rejection closes the ride for good and the next ride is
// anchored at the rejected request. There is no backtracking and no
// skip-and-retry, so the result depends on input order and every request
// belongs to exactly one ride.
func GroupRequests(requests []*models.Request, cfg *models.Config) []*models.Ride {
	var rides []*models.Ride

	i := 0
	for i < len(requests) {
		ride := models.NewRide(cuid.New())
		ride.AddRequest(requests[i])
		ride.RebuildRoute(cfg.Speed)
		i++

		for i < len(requests) && canExtend(ride, requests[i], cfg) {
			ride.AddRequest(requests[i])
			ride.RebuildRoute(cfg.Speed)
			i++
		}

		finalizeRide(ride)
		rides = append(rides, ride)
	}

	return rides
}

// canExtend evaluates the four grouping constraints in their fixed order,
// short-circuiting on the first failure: capacity, pairwise proximity,
// hypothetical-ride efficiency, then anchor delay.
func canExtend(ride *models.Ride, candidate *models.Request, cfg *models.Config) bool {
	if ride.ParticipantCount() >= cfg.Capacity {
		return false
	}

	for _, other := range ride.Requests {
		if models.Distance(candidate.Origin, other.Origin) > cfg.MaxDistance ||
			models.Distance(candidate.Destination, other.Destination) > cfg.MaxDistance {
			return false
		}
	}

	trial := models.NewRide("")
	for _, other := range ride.Requests {
		trial.AddRequest(other)
	}
	trial.AddRequest(candidate)
	trial.RebuildRoute(cfg.Speed)
	if trial.Efficiency < cfg.MinEfficiency {
		return false
	}

	anchor := ride.Anchor()
	if math.Abs(float64(candidate.Timestamp-anchor.Timestamp)) > cfg.MaxDelay {
		return false
	}

	return true
}

// finalizeRide records the ride association and lifecycle state on every
// participant once the ride can no longer grow.
func finalizeRide(ride *models.Ride) {
	state := models.StateCombinedRide
	if ride.ParticipantCount() == 1 {
		state = models.StateIndividualRide
	}
	for _, req := range ride.Requests {
		req.RideID = ride.ID
		req.UpdateState(state)
	}
}
