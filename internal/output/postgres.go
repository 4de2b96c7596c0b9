package output

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
)

const createCompletionsTable = `
CREATE TABLE IF NOT EXISTS ride_completions (
	ride_id        TEXT PRIMARY KEY,
	finish_time    DOUBLE PRECISION NOT NULL,
	total_distance DOUBLE PRECISION NOT NULL,
	total_duration DOUBLE PRECISION NOT NULL,
	efficiency     DOUBLE PRECISION NOT NULL,
	stop_count     INTEGER NOT NULL,
	path           JSONB NOT NULL,
	passengers     JSONB NOT NULL
)`

// PostgresOutput persists completion records into a ride_completions table.
type PostgresOutput struct {
	db *sql.DB
}

func NewPostgresOutput(config *models.DatabaseConfig) (*PostgresOutput, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	if _, err := db.Exec(createCompletionsTable); err != nil {
		return nil, fmt.Errorf("error creating ride_completions table: %w", err)
	}

	return &PostgresOutput{db: db}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	var record models.RideCompletion
	if err := json.Unmarshal(msg, &record); err != nil {
		return err
	}

	path, err := json.Marshal(record.Path)
	if err != nil {
		return err
	}
	passengers, err := json.Marshal(record.Passengers)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(
		`INSERT INTO ride_completions
			(ride_id, finish_time, total_distance, total_duration, efficiency, stop_count, path, passengers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.RideID,
		record.FinishTime,
		record.TotalDistance,
		record.TotalDuration,
		record.Efficiency,
		record.StopCount,
		path,
		passengers,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into ride_completions: %w", err)
	}

	return nil
}

// BatchInsertRequests stores the input workload alongside the completions so
// a run can be joined back to the requests that produced it.
func (p *PostgresOutput) BatchInsertRequests(requests []*models.Request) error {
	if _, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS ride_requests (
			id          TEXT PRIMARY KEY,
			requested_at BIGINT NOT NULL,
			origin      TEXT NOT NULL,
			destination TEXT NOT NULL,
			state       TEXT NOT NULL,
			ride_id     TEXT
		)`); err != nil {
		return fmt.Errorf("error creating ride_requests table: %w", err)
	}

	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO ride_requests (id, requested_at, origin, destination, state, ride_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, ride_id = EXCLUDED.ride_id`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, req := range requests {
		origin := fmt.Sprintf("POINT(%f %f)", req.Origin.X, req.Origin.Y)
		destination := fmt.Sprintf("POINT(%f %f)", req.Destination.X, req.Destination.Y)
		if _, err := stmt.Exec(req.ID, req.Timestamp, origin, destination, req.State, req.RideID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgresOutput) Close() error {
	return p.db.Close()
}
