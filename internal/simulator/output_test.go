package simulator

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

func sampleCompletion() []byte {
	record := models.RideCompletion{
		RideID:        "ride-1",
		FinishTime:    11,
		TotalDistance: 11,
		TotalDuration: 11,
		Efficiency:    20.0 / 11.0,
		StopCount:     4,
		Path: []models.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 10, Y: 0}, {X: 11, Y: 0},
		},
		Passengers: []models.PassengerRecord{
			{ID: "A", State: models.StateCompleted},
			{ID: "B", State: models.StateCompleted},
		},
	}
	msg, _ := json.Marshal(record)
	return msg
}

func TestJSONOutputWritesRecords(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONOutput(dir, "rides")

	require.NoError(t, sink.WriteMessage(models.TopicRideCompletions, sampleCompletion()))
	require.NoError(t, sink.WriteMessage(models.TopicRideCompletions, sampleCompletion()))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(filepath.Join(dir, "rides", models.TopicRideCompletions+".jsonl"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var record models.RideCompletion
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "ride-1", record.RideID)
	assert.Equal(t, 4, record.StopCount)
	assert.Len(t, record.Path, 4)
}

func TestCSVOutputWritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVOutput(dir, "rides")

	require.NoError(t, sink.WriteMessage(models.TopicRideCompletions, sampleCompletion()))
	require.NoError(t, sink.Close())

	file, err := os.Open(filepath.Join(dir, "rides", models.TopicRideCompletions+".csv"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "ride-1", rows[1][0])
	assert.Equal(t, "11.00", rows[1][1])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "0 0;1 0;10 0;11 0", rows[1][6])
	assert.Equal(t, "A;B", rows[1][7])
}

func TestConsoleOutputRejectsMalformedMessage(t *testing.T) {
	sink := &ConsoleOutput{}
	assert.Error(t, sink.WriteMessage(models.TopicRideCompletions, []byte("not json")))
	assert.NoError(t, sink.Close())
}

func TestFlattenHelpers(t *testing.T) {
	assert.Equal(t, "", flattenPath(nil))
	assert.Equal(t, "1 2;3 4", flattenPath([]models.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}))
	assert.Equal(t, "A;B", flattenPassengers([]models.PassengerRecord{{ID: "A"}, {ID: "B"}}))
}
