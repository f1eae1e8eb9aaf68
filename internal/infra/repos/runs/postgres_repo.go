package runs

import (
	"database/sql"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"exportgen/internal/domain"
)

type PostgresRepository struct {
	dsn string
	db  *sql.DB
}

func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{dsn: dsn}
}

func (r *PostgresRepository) Init() error {
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		blueprint_id TEXT NOT NULL,
		blueprint_name TEXT NOT NULL,
		out_dir TEXT NOT NULL,
		data_size_bytes BIGINT NOT NULL,
		number_of_files BIGINT NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		stats TEXT,
		error TEXT
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *PostgresRepository) Create(run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = *run.CompletedAt
	}

	query := `
		INSERT INTO runs (
			id, blueprint_id, blueprint_name, out_dir,
			data_size_bytes, number_of_files,
			status, started_at, completed_at, stats, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(query,
		run.ID, run.BlueprintID, run.BlueprintName, run.OutDir,
		run.DataSizeBytes, run.NumberOfFiles,
		run.Status, run.StartedAt, completedAt,
		string(run.Stats), run.Error,
	)
	return err
}

func (r *PostgresRepository) Update(run *domain.Run) error {
	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = *run.CompletedAt
	}

	query := `
		UPDATE runs SET
			status = $1, completed_at = $2, stats = $3, error = $4
		WHERE id = $5
	`

	_, err := r.db.Exec(query, run.Status, completedAt, string(run.Stats), run.Error, run.ID)
	return err
}

func (r *PostgresRepository) Get(id string) (*domain.Run, error) {
	query := `
		SELECT id, blueprint_id, blueprint_name, out_dir,
		       data_size_bytes, number_of_files,
		       status, started_at, completed_at, stats, error
		FROM runs WHERE id = $1
	`

	return scanPostgresRun(r.db.QueryRow(query, id))
}

func (r *PostgresRepository) List(limit int, status string) ([]*domain.Run, error) {
	query := `
		SELECT id, blueprint_id, blueprint_name, out_dir,
		       data_size_bytes, number_of_files,
		       status, started_at, completed_at, stats, error
		FROM runs
	`

	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY started_at DESC"

	if limit > 0 {
		if status != "" {
			query += " LIMIT $2"
		} else {
			query += " LIMIT $1"
		}
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanPostgresRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func scanPostgresRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var completedAt sql.NullTime
	var statsStr sql.NullString
	var errorStr sql.NullString

	err := row.Scan(
		&run.ID, &run.BlueprintID, &run.BlueprintName, &run.OutDir,
		&run.DataSizeBytes, &run.NumberOfFiles,
		&run.Status, &run.StartedAt, &completedAt, &statsStr, &errorStr,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	if statsStr.Valid && statsStr.String != "" {
		run.Stats = json.RawMessage(statsStr.String)
	}
	if errorStr.Valid {
		run.Error = errorStr.String
	}

	return &run, nil
}
