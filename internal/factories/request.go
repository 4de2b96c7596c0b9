package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

// RequestFactory produces synthetic ride request workloads. Origins and
// destinations cluster around a handful of hotspots so the greedy grouping
// has realistic pooling opportunities; timestamps increase monotonically
// with random gaps.
type RequestFactory struct{}

type hotspot struct {
	origin      models.Point
	destination models.Point
}

func (f *RequestFactory) CreateRequests(cfg *models.Config) []*models.Request {
	fake := faker.New()
	rng := rand.New(rand.NewSource(cfg.Seed))

	area := cfg.GeneratorAreaSize
	if area <= 0 {
		area = 100
	}
	spread := cfg.GeneratorSpread
	if spread <= 0 {
		spread = area / 20
	}
	hotspotCount := cfg.GeneratorHotspots
	if hotspotCount <= 0 {
		hotspotCount = 5
	}
	timeSpan := cfg.GeneratorTimeSpan
	if timeSpan <= 0 {
		timeSpan = 1000
	}

	hotspots := make([]hotspot, hotspotCount)
	for i := range hotspots {
		hotspots[i] = hotspot{
			origin:      models.Point{X: rng.Float64() * area, Y: rng.Float64() * area},
			destination: models.Point{X: rng.Float64() * area, Y: rng.Float64() * area},
		}
	}

	requests := make([]*models.Request, 0, cfg.GeneratorRequests)
	var timestamp int64
	maxGap := timeSpan / max(int64(cfg.GeneratorRequests), 1)
	for i := 0; i < cfg.GeneratorRequests; i++ {
		h := hotspots[rng.Intn(len(hotspots))]
		origin := jitter(rng, h.origin, spread)
		destination := jitter(rng, h.destination, spread)

		timestamp += int64(fake.IntBetween(0, int(max(maxGap, 1))))
		requests = append(requests, models.NewRequest(cuid.New(), timestamp, origin, destination))
	}
	return requests
}

func jitter(rng *rand.Rand, center models.Point, spread float64) models.Point {
	return models.Point{
		X: center.X + (rng.Float64()*2-1)*spread,
		Y: center.Y + (rng.Float64()*2-1)*spread,
	}
}
