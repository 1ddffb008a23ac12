// Package joborder persists job orders in Postgres.
package joborder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffing-api/internal/common/database"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
	"staffing-api/internal/repository/assignment"
)

const viewSelect = `
	SELECT jo.id, jo.title, jo.description, jo.required_skills, jo.experience_required, jo.client_id,
	       jo.salary_range, jo.location, jo.status, jo.created_at, jo.updated_at,
	       c.company_name, c.contact_person
	FROM job_orders jo
	JOIN clients c ON c.id = jo.client_id`

type Repository struct {
	db database.DBTX
}

func New(db database.DBTX) *Repository {
	return &Repository{db: db}
}

func scanView(row database.Scanner, extra ...interface{}) (*models.JobOrderView, error) {
	var v models.JobOrderView
	dest := []interface{}{
		&v.ID, &v.Title, &v.Description, &v.RequiredSkills, &v.ExperienceRequired, &v.ClientID,
		&v.SalaryRange, &v.Location, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		&v.CompanyName, &v.ContactPerson,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) queryViews(ctx context.Context, b *querybuilder.Builder) ([]models.JobOrderView, error) {
	rows, err := r.db.QueryContext(ctx, viewSelect+b.Clause()+" ORDER BY jo.created_at DESC", b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list job orders: %w", err)
	}
	defer rows.Close()

	out := make([]models.JobOrderView, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job order: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list job orders: %w", err)
	}
	return out, nil
}

// List returns job orders filtered by status and client, newest first.
func (r *Repository) List(ctx context.Context, f models.JobOrderFilter) ([]models.JobOrderView, error) {
	b := querybuilder.New().WhereIf(f.Status != "", "jo.status = ?", f.Status)
	if f.ClientID != nil {
		b.Where("jo.client_id = ?", *f.ClientID)
	}
	return r.queryViews(ctx, b)
}

func (r *Repository) ListOpen(ctx context.Context) ([]models.JobOrderView, error) {
	return r.queryViews(ctx, querybuilder.New().Where("jo.status = ?", models.JobOrderStatusOpen))
}

func (r *Repository) GetView(ctx context.Context, id int64) (*models.JobOrderView, error) {
	v, err := scanView(r.db.QueryRowContext(ctx, viewSelect+" WHERE jo.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job order %d: %w", id, err)
	}
	return v, nil
}

// GetDetail loads a job order with client contact data and its assignments.
func (r *Repository) GetDetail(ctx context.Context, id int64) (*models.JobOrderDetail, error) {
	const query = `
		SELECT jo.id, jo.title, jo.description, jo.required_skills, jo.experience_required, jo.client_id,
		       jo.salary_range, jo.location, jo.status, jo.created_at, jo.updated_at,
		       c.company_name, c.contact_person, c.email, c.phone
		FROM job_orders jo
		JOIN clients c ON c.id = jo.client_id
		WHERE jo.id = $1`

	d := &models.JobOrderDetail{}
	v, err := scanView(r.db.QueryRowContext(ctx, query, id), &d.ClientEmail, &d.ClientPhone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job order %d: %w", id, err)
	}
	d.JobOrderView = *v

	d.Assignments, err = assignment.QueryViews(ctx, r.db,
		" WHERE a.job_order_id = $1 ORDER BY a.assigned_date DESC", id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID returns the bare job order row.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.JobOrder, error) {
	var jo models.JobOrder
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, required_skills, experience_required, client_id,
		       salary_range, location, status, created_at, updated_at
		FROM job_orders WHERE id = $1`, id).
		Scan(&jo.ID, &jo.Title, &jo.Description, &jo.RequiredSkills, &jo.ExperienceRequired, &jo.ClientID,
			&jo.SalaryRange, &jo.Location, &jo.Status, &jo.CreatedAt, &jo.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job order %d: %w", id, err)
	}
	return &jo, nil
}

// Create inserts a job order and returns its id.
func (r *Repository) Create(ctx context.Context, in models.JobOrderInput) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO job_orders (title, description, required_skills, experience_required, client_id, salary_range, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		in.Title, in.Description, in.RequiredSkills, in.ExperienceRequired, in.ClientID,
		in.SalaryRange, in.Location, in.Status).Scan(&id)
	if database.IsForeignKeyViolation(err) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("insert job order: %w", err)
	}
	return id, nil
}

// Replace overwrites every editable column. The client is never reassigned.
func (r *Repository) Replace(ctx context.Context, id int64, in models.JobOrderInput) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE job_orders
		SET title = $1, description = $2, required_skills = $3, experience_required = $4,
		    status = $5, salary_range = $6, location = $7, updated_at = NOW()
		WHERE id = $8`,
		in.Title, in.Description, in.RequiredSkills, in.ExperienceRequired,
		in.Status, in.SalaryRange, in.Location, id)
	if err != nil {
		return fmt.Errorf("update job order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job order %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
