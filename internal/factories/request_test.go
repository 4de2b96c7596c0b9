package factories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

func TestCreateRequests(t *testing.T) {
	cfg := &models.Config{
		GeneratorRequests: 50,
		GeneratorHotspots: 3,
		GeneratorTimeSpan: 500,
		GeneratorAreaSize: 100,
		Seed:              7,
	}

	factory := &RequestFactory{}
	requests := factory.CreateRequests(cfg)
	require.Len(t, requests, 50)

	ids := make(map[string]bool)
	var prev int64
	for _, req := range requests {
		assert.False(t, ids[req.ID], "duplicate id %s", req.ID)
		ids[req.ID] = true

		assert.GreaterOrEqual(t, req.Timestamp, prev)
		prev = req.Timestamp

		assert.Equal(t, models.StateRequested, req.State)
	}
}

func TestCreateRequestsDefaults(t *testing.T) {
	cfg := &models.Config{GeneratorRequests: 3}

	factory := &RequestFactory{}
	requests := factory.CreateRequests(cfg)
	assert.Len(t, requests, 3)
}

func TestCreateRequestsEmpty(t *testing.T) {
	factory := &RequestFactory{}
	assert.Empty(t, factory.CreateRequests(&models.Config{}))
}
