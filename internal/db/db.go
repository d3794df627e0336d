// Package db wraps the Postgres solve-job history and the Redis fill
// cache behind a single connection holder, the way the rest of this
// stack keeps storage access in one narrow layer.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crossplay/fillengine/internal/models"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: db, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates the solve_jobs table and its indexes.
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS solve_jobs (
		id VARCHAR(36) PRIMARY KEY,
		grid_digest VARCHAR(64) NOT NULL,
		dict_digest VARCHAR(64) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'queued',
		error TEXT,
		solution_raw TEXT,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_solve_jobs_status ON solve_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_solve_jobs_grid_digest ON solve_jobs(grid_digest);
	CREATE INDEX IF NOT EXISTS idx_solve_jobs_created_at ON solve_jobs(created_at DESC);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// CreateSolveJob inserts a new job row in the queued state.
func (d *Database) CreateSolveJob(ctx context.Context, job *models.SolveJob) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO solve_jobs (id, grid_digest, dict_digest, status, grid_width, grid_height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, job.ID, job.GridDigest, job.DictDigest, job.Status, job.GridWidth, job.GridHeight, job.CreatedAt)
	return err
}

// FinishSolveJob records a job's terminal status, result, and finish time.
func (d *Database) FinishSolveJob(ctx context.Context, id string, status models.JobStatus, solutionRaw, errMsg string, finishedAt time.Time) error {
	_, err := d.DB.ExecContext(ctx, `
		UPDATE solve_jobs
		SET status = $2, solution_raw = $3, error = $4, finished_at = $5
		WHERE id = $1
	`, id, status, solutionRaw, errMsg, finishedAt)
	return err
}

// GetSolveJob fetches a single job by ID.
func (d *Database) GetSolveJob(ctx context.Context, id string) (*models.SolveJob, error) {
	row := d.DB.QueryRowContext(ctx, `
		SELECT id, grid_digest, dict_digest, status, COALESCE(error, ''), COALESCE(solution_raw, ''),
		       grid_width, grid_height, created_at, finished_at
		FROM solve_jobs WHERE id = $1
	`, id)
	return scanSolveJob(row)
}

// ListRecentSolveJobs returns the most recently created jobs, newest first.
func (d *Database) ListRecentSolveJobs(ctx context.Context, limit int) ([]*models.SolveJob, error) {
	rows, err := d.DB.QueryContext(ctx, `
		SELECT id, grid_digest, dict_digest, status, COALESCE(error, ''), COALESCE(solution_raw, ''),
		       grid_width, grid_height, created_at, finished_at
		FROM solve_jobs ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.SolveJob
	for rows.Next() {
		job, err := scanSolveJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSolveJob(row rowScanner) (*models.SolveJob, error) {
	var job models.SolveJob
	var finishedAt sql.NullTime
	if err := row.Scan(&job.ID, &job.GridDigest, &job.DictDigest, &job.Status, &job.Error, &job.SolutionRaw,
		&job.GridWidth, &job.GridHeight, &job.CreatedAt, &finishedAt); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		job.FinishedAt = &finishedAt.Time
	}
	return &job, nil
}

// fillCacheTTL controls how long a completed fill result is kept in
// Redis, keyed by the grid+dictionary digest so identical requests are
// served without re-running the search.
const fillCacheTTL = 24 * time.Hour

func fillCacheKey(gridDigest, dictDigest string) string {
	return "fill:" + gridDigest + ":" + dictDigest
}

// CacheFillResult stores a solved grid's raw letters under its digest pair.
func (d *Database) CacheFillResult(ctx context.Context, gridDigest, dictDigest, solutionRaw string) error {
	return d.Redis.Set(ctx, fillCacheKey(gridDigest, dictDigest), solutionRaw, fillCacheTTL).Err()
}

// GetCachedFillResult returns a previously cached solution, if any.
func (d *Database) GetCachedFillResult(ctx context.Context, gridDigest, dictDigest string) (string, bool, error) {
	val, err := d.Redis.Get(ctx, fillCacheKey(gridDigest, dictDigest)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
