package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 5.0, Distance(Point{X: 3, Y: 4}, Point{X: 0, Y: 0}), 1e-9)
	assert.Zero(t, Distance(Point{X: 2, Y: 2}, Point{X: 2, Y: 2}))
}

func TestPointScan(t *testing.T) {
	var p Point
	require.NoError(t, p.Scan("POINT(1.5 -2.25)"))
	assert.Equal(t, Point{X: 1.5, Y: -2.25}, p)

	var q Point
	require.NoError(t, q.Scan([]byte("POINT(0 7)")))
	assert.Equal(t, Point{X: 0, Y: 7}, q)

	var r Point
	assert.Error(t, r.Scan(42))
	assert.NoError(t, r.Scan(nil))
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "1.5 -2.25", Point{X: 1.5, Y: -2.25}.String())
	assert.Equal(t, "0 0", Point{}.String())
}
