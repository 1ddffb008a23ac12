// Package assignment persists assignments and the placement cascade.
package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffing-api/internal/common/database"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

// ViewSelect selects an assignment joined with its candidate, job order and
// client. Callers append WHERE, ORDER BY and LIMIT.
const ViewSelect = `
	SELECT a.id, a.candidate_id, a.job_order_id, a.status, a.notes, a.start_date, a.end_date,
	       a.assigned_date, a.updated_at,
	       c.first_name, c.last_name, c.email, c.skills, c.experience_years,
	       jo.title, jo.required_skills, cl.company_name
	FROM assignments a
	JOIN candidates c ON c.id = a.candidate_id
	JOIN job_orders jo ON jo.id = a.job_order_id
	JOIN clients cl ON cl.id = jo.client_id`

var writable = []string{"status", "notes", "start_date", "end_date"}

type Repository struct {
	db database.TxStarter
}

func New(db database.TxStarter) *Repository {
	return &Repository{db: db}
}

// ScanView scans one row produced by ViewSelect.
func ScanView(row database.Scanner) (*models.AssignmentView, error) {
	var v models.AssignmentView
	err := row.Scan(
		&v.ID, &v.CandidateID, &v.JobOrderID, &v.Status, &v.Notes, &v.StartDate, &v.EndDate,
		&v.AssignedDate, &v.UpdatedAt,
		&v.CandidateFirstName, &v.CandidateLastName, &v.CandidateEmail, &v.CandidateSkills, &v.CandidateExperience,
		&v.JobTitle, &v.JobRequiredSkills, &v.ClientCompany,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryViews runs ViewSelect followed by tail and collects the rows.
func QueryViews(ctx context.Context, db database.DBTX, tail string, args ...interface{}) ([]models.AssignmentView, error) {
	rows, err := db.QueryContext(ctx, ViewSelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	out := make([]models.AssignmentView, 0)
	for rows.Next() {
		v, err := ScanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error) {
	b := querybuilder.New().WhereIf(f.Status != "", "a.status = ?", f.Status)
	return QueryViews(ctx, r.db, b.Clause()+" ORDER BY a.assigned_date DESC", b.Args()...)
}

func (r *Repository) ListByCandidate(ctx context.Context, candidateID int64) ([]models.AssignmentView, error) {
	return QueryViews(ctx, r.db, " WHERE a.candidate_id = $1 ORDER BY a.assigned_date DESC", candidateID)
}

func (r *Repository) ListByJobOrder(ctx context.Context, jobOrderID int64) ([]models.AssignmentView, error) {
	return QueryViews(ctx, r.db, " WHERE a.job_order_id = $1 ORDER BY a.assigned_date DESC", jobOrderID)
}

func (r *Repository) GetView(ctx context.Context, id int64) (*models.AssignmentView, error) {
	v, err := ScanView(r.db.QueryRowContext(ctx, ViewSelect+" WHERE a.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return v, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	var a models.Assignment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, candidate_id, job_order_id, status, notes, start_date, end_date, assigned_date, updated_at
		FROM assignments WHERE id = $1`, id).
		Scan(&a.ID, &a.CandidateID, &a.JobOrderID, &a.Status, &a.Notes, &a.StartDate, &a.EndDate, &a.AssignedDate, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return &a, nil
}

// Exists reports whether the candidate is already assigned to the job order.
func (r *Repository) Exists(ctx context.Context, candidateID, jobOrderID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM assignments WHERE candidate_id = $1 AND job_order_id = $2)",
		candidateID, jobOrderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return exists, nil
}

// Create inserts the assignment and returns its id. A nil AssignedDate means now.
func (r *Repository) Create(ctx context.Context, in models.AssignmentInput) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO assignments (candidate_id, job_order_id, status, notes, assigned_date)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id`,
		in.CandidateID, in.JobOrderID, in.Status, in.Notes, in.AssignedDate).Scan(&id)
	switch {
	case database.IsUniqueViolation(err):
		return 0, models.ErrAlreadyExists
	case database.IsForeignKeyViolation(err):
		return 0, models.ErrNotFound
	case err != nil:
		return 0, fmt.Errorf("insert assignment: %w", err)
	}
	return id, nil
}

// UpdateStatus applies patch to the assignment. When placed is true the job
// order becomes "filled" and the candidate "placed" in the same transaction;
// any failure rolls all three writes back.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, patch *querybuilder.Patch, placed bool) error {
	patch = patch.Only(writable...)
	if patch.Len() == 0 {
		return fmt.Errorf("update assignment %d: empty patch", id)
	}

	return database.WithTx(ctx, r.db, func(tx database.DBTX) error {
		set, args := patch.SetClause(1)
		query := fmt.Sprintf("UPDATE assignments SET %s, updated_at = NOW() WHERE id = $%d RETURNING candidate_id, job_order_id",
			set, len(args)+1)

		var candidateID, jobOrderID int64
		err := tx.QueryRowContext(ctx, query, append(args, id)...).Scan(&candidateID, &jobOrderID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update assignment %d: %w", id, err)
		}

		if !placed {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE job_orders SET status = 'filled', updated_at = NOW() WHERE id = $1", jobOrderID); err != nil {
			return fmt.Errorf("fill job order %d: %w", jobOrderID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE candidates SET status = 'placed', updated_at = NOW() WHERE id = $1", candidateID); err != nil {
			return fmt.Errorf("place candidate %d: %w", candidateID, err)
		}
		return nil
	})
}
