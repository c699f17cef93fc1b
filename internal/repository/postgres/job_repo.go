// internal/repository/postgres/job_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/job"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, quote_id, customer_id, title, description, status,
	start_date, estimated_end_date, actual_end_date, progress_percentage,
	admin_notes, customer_visible_notes, created_at, updated_at`

// Create inserts a job row.
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (
			id, quote_id, customer_id, title, description, status,
			start_date, estimated_end_date, progress_percentage,
			admin_notes, customer_visible_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		j.ID, j.QuoteID, j.CustomerID, j.Title, j.Description, j.Status,
		j.StartDate, j.EstimatedEndDate, j.ProgressPercentage,
		j.AdminNotes, j.CustomerVisibleNotes,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", mapError(err))
	}

	return nil
}

// FindByID retrieves a job by id.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return j, nil
}

// List returns every job, newest first. Admin read path.
func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

// ListByCustomerID returns the jobs owned by a customer, newest first.
func (r *JobRepository) ListByCustomerID(ctx context.Context, customerID string) ([]job.Job, error) {
	return r.list(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID,
	)
}

// ExistsByQuoteID reports whether a job already references the quote.
// Guards the one-job-per-quote invariant.
func (r *JobRepository) ExistsByQuoteID(ctx context.Context, quoteID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE quote_id = $1)`, quoteID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}

	return exists, nil
}

func (r *JobRepository) list(ctx context.Context, query string, args ...interface{}) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

// Update applies a partial update: nil request fields stay untouched.
func (r *JobRepository) Update(ctx context.Context, id string, req *job.UpdateRequest) error {
	sets := make([]string, 0, 10)
	args := make([]interface{}, 0, 11)
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.StartDate != nil {
		add("start_date", *req.StartDate)
	}
	if req.EstimatedEndDate != nil {
		add("estimated_end_date", *req.EstimatedEndDate)
	}
	if req.ActualEndDate != nil {
		add("actual_end_date", *req.ActualEndDate)
	}
	if req.ProgressPercentage != nil {
		add("progress_percentage", *req.ProgressPercentage)
	}
	if req.AdminNotes != nil {
		add("admin_notes", *req.AdminNotes)
	}
	if req.CustomerVisibleNotes != nil {
		add("customer_visible_notes", *req.CustomerVisibleNotes)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("job", id)
	}

	return nil
}

// Delete removes a job permanently.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return xerrNotFound("job", id)
	}

	return nil
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.QuoteID, &j.CustomerID, &j.Title, &j.Description, &j.Status,
		&j.StartDate, &j.EstimatedEndDate, &j.ActualEndDate, &j.ProgressPercentage,
		&j.AdminNotes, &j.CustomerVisibleNotes, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
