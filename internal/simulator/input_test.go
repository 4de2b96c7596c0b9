package simulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

func TestReadCSVRequestsWithHeader(t *testing.T) {
	input := `id,timestamp,origin_x,origin_y,dest_x,dest_y
A,0,0,0,10,0
B,5,1,0,11,0
`
	requests, err := readCSVRequests(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, "A", requests[0].ID)
	assert.Equal(t, int64(0), requests[0].Timestamp)
	assert.Equal(t, models.Point{X: 0, Y: 0}, requests[0].Origin)
	assert.Equal(t, models.Point{X: 10, Y: 0}, requests[0].Destination)
	assert.Equal(t, models.StateRequested, requests[0].State)

	assert.Equal(t, "B", requests[1].ID)
	assert.Equal(t, int64(5), requests[1].Timestamp)
}

func TestReadCSVRequestsWithoutHeader(t *testing.T) {
	input := "A,0,0,0,10,0\nB,5,1,0,11,0\n"
	requests, err := readCSVRequests(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestReadCSVRequestsMalformedCoordinate(t *testing.T) {
	input := "A,0,zero,0,10,0\n"
	_, err := readCSVRequests(strings.NewReader(input))
	assert.Error(t, err)
}

func TestReadCSVRequestsEmpty(t *testing.T) {
	requests, err := readCSVRequests(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestReadStreamRequestsOverridesParams(t *testing.T) {
	input := `2 1.5 100 10 5 0.5
2
A 0 0 0 10 0
B 5 1 0 11 0
`
	cfg := &models.Config{Capacity: 99, Speed: 99}
	requests, err := readStreamRequests(strings.NewReader(input), cfg)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, 2, cfg.Capacity)
	assert.InDelta(t, 1.5, cfg.Speed, 1e-9)
	assert.InDelta(t, 100.0, cfg.MaxWaitTime, 1e-9)
	assert.InDelta(t, 10.0, cfg.MaxDelay, 1e-9)
	assert.InDelta(t, 5.0, cfg.MaxDistance, 1e-9)
	assert.InDelta(t, 0.5, cfg.MinEfficiency, 1e-9)

	assert.Equal(t, "B", requests[1].ID)
	assert.Equal(t, models.Point{X: 11, Y: 0}, requests[1].Destination)
}

func TestReadStreamRequestsTruncated(t *testing.T) {
	input := "2 1 100 10 5 0.5\n3\nA 0 0 0 10 0\n"
	_, err := readStreamRequests(strings.NewReader(input), &models.Config{})
	assert.Error(t, err)
}

func TestLoadRequestsUnknownFormat(t *testing.T) {
	_, err := LoadRequests(&models.Config{InputFormat: "xml"})
	assert.Error(t, err)
}
