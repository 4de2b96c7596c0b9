package simulator

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

// LoadRequests reads the request workload named by the configuration. The
// csv format expects one record per line, "id,timestamp,origin_x,origin_y,
// dest_x,dest_y", with an optional header. The stream format is the plain
// whitespace protocol: a parameter line (capacity, speed, max wait, max
// delay, max distance, min efficiency), a request count, then one request
// per line; its parameters overwrite the configured ones.
func LoadRequests(cfg *models.Config) ([]*models.Request, error) {
	switch cfg.InputFormat {
	case "", "csv":
		file, err := os.Open(cfg.InputFile)
		if err != nil {
			return nil, fmt.Errorf("opening request file: %w", err)
		}
		defer file.Close()
		return readCSVRequests(file)
	case "stream":
		reader := io.Reader(os.Stdin)
		if cfg.InputFile != "" {
			file, err := os.Open(cfg.InputFile)
			if err != nil {
				return nil, fmt.Errorf("opening request stream: %w", err)
			}
			defer file.Close()
			reader = file
		}
		return readStreamRequests(reader, cfg)
	default:
		return nil, fmt.Errorf("unknown input format %q", cfg.InputFormat)
	}
}

func readCSVRequests(r io.Reader) ([]*models.Request, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	var requests []*models.Request
	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading request record: %w", err)
		}
		line++
		if line == 1 {
			if _, err := strconv.ParseInt(fields[1], 10, 64); err != nil {
				// header row
				continue
			}
		}
		req, err := parseRequestFields(fields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func parseRequestFields(fields []string) (*models.Request, error) {
	timestamp, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", fields[1], err)
	}
	coords := make([]float64, 4)
	for i, raw := range fields[2:6] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", raw, err)
		}
		coords[i] = v
	}
	origin := models.Point{X: coords[0], Y: coords[1]}
	destination := models.Point{X: coords[2], Y: coords[3]}
	return models.NewRequest(fields[0], timestamp, origin, destination), nil
}

func readStreamRequests(r io.Reader, cfg *models.Config) ([]*models.Request, error) {
	br := bufio.NewReader(r)

	if _, err := fmt.Fscan(br, &cfg.Capacity, &cfg.Speed, &cfg.MaxWaitTime,
		&cfg.MaxDelay, &cfg.MaxDistance, &cfg.MinEfficiency); err != nil {
		return nil, fmt.Errorf("reading simulation parameters: %w", err)
	}

	var count int
	if _, err := fmt.Fscan(br, &count); err != nil {
		return nil, fmt.Errorf("reading request count: %w", err)
	}

	requests := make([]*models.Request, 0, count)
	for i := 0; i < count; i++ {
		var (
			id             string
			timestamp      int64
			ox, oy, dx, dy float64
		)
		if _, err := fmt.Fscan(br, &id, &timestamp, &ox, &oy, &dx, &dy); err != nil {
			return nil, fmt.Errorf("reading request %d: %w", i+1, err)
		}
		origin := models.Point{X: ox, Y: oy}
		destination := models.Point{X: dx, Y: dy}
		requests = append(requests, models.NewRequest(id, timestamp, origin, destination))
	}
	return requests, nil
}
