// Package client persists clients in Postgres.
package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffing-api/internal/common/database"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

const columns = `id, company_name, contact_person, email, phone, address, status, created_at, updated_at`

var writable = []string{"company_name", "contact_person", "email", "phone", "address", "status"}

type Repository struct {
	db database.DBTX
}

func New(db database.DBTX) *Repository {
	return &Repository{db: db}
}

func scan(row database.Scanner, extra ...interface{}) (*models.Client, error) {
	var c models.Client
	dest := []interface{}{
		&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone, &c.Address,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns active clients with their open job order count, by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.ClientSummary, error) {
	const query = `
		SELECT c.id, c.company_name, c.contact_person, c.email, c.phone, c.address,
		       c.status, c.created_at, c.updated_at,
		       COUNT(jo.id) AS open_jobs
		FROM clients c
		LEFT JOIN job_orders jo ON jo.client_id = c.id AND jo.status = 'open'
		WHERE c.status = 'active'
		GROUP BY c.id
		ORDER BY c.company_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]models.ClientSummary, 0)
	for rows.Next() {
		var open int64
		c, err := scan(rows, &open)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, models.ClientSummary{Client: *c, OpenJobs: open})
	}
	return out, rows.Err()
}

// ListWithStats returns active clients with total, open and filled job counts.
func (r *Repository) ListWithStats(ctx context.Context) ([]models.ClientStats, error) {
	const query = `
		SELECT c.id, c.company_name, c.contact_person, c.email, c.phone, c.address,
		       c.status, c.created_at, c.updated_at,
		       COUNT(jo.id) AS total_jobs,
		       COUNT(jo.id) FILTER (WHERE jo.status = 'open') AS open_jobs,
		       COUNT(jo.id) FILTER (WHERE jo.status = 'filled') AS filled_jobs
		FROM clients c
		LEFT JOIN job_orders jo ON jo.client_id = c.id
		WHERE c.status = 'active'
		GROUP BY c.id
		ORDER BY c.company_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list client stats: %w", err)
	}
	defer rows.Close()

	out := make([]models.ClientStats, 0)
	for rows.Next() {
		var s models.ClientStats
		c, err := scan(rows, &s.TotalJobs, &s.OpenJobs, &s.FilledJobs)
		if err != nil {
			return nil, fmt.Errorf("scan client stats: %w", err)
		}
		s.Client = *c
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	c, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM clients WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return c, nil
}

// GetDetail loads a client and its job orders, newest first.
func (r *Repository) GetDetail(ctx context.Context, id int64) (*models.ClientDetail, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, required_skills, experience_required, client_id,
		       salary_range, location, status, created_at, updated_at
		FROM job_orders
		WHERE client_id = $1
		ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("list job orders of client %d: %w", id, err)
	}
	defer rows.Close()

	detail := &models.ClientDetail{Client: *c, JobOrders: make([]models.JobOrder, 0)}
	for rows.Next() {
		var jo models.JobOrder
		if err := rows.Scan(&jo.ID, &jo.Title, &jo.Description, &jo.RequiredSkills, &jo.ExperienceRequired,
			&jo.ClientID, &jo.SalaryRange, &jo.Location, &jo.Status, &jo.CreatedAt, &jo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job order: %w", err)
		}
		detail.JobOrders = append(detail.JobOrders, jo)
	}
	return detail, rows.Err()
}

// NameExists reports whether another client already uses companyName.
func (r *Repository) NameExists(ctx context.Context, companyName string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM clients WHERE company_name = $1 AND id <> $2)",
		companyName, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check client name: %w", err)
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	const query = `
		INSERT INTO clients (company_name, contact_person, email, phone, address, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	c, err := scan(r.db.QueryRowContext(ctx, query,
		in.CompanyName, in.ContactPerson, in.Email, in.Phone, in.Address, in.Status))
	if database.IsUniqueViolation(err) {
		return nil, models.ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

// Update applies the writable columns of patch. Omitted columns keep their value.
func (r *Repository) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Client, error) {
	patch = patch.Only(writable...)
	if patch.Len() == 0 {
		return r.GetByID(ctx, id)
	}

	set, args := patch.SetClause(1)
	query := fmt.Sprintf("UPDATE clients SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		set, len(args)+1, columns)

	c, err := scan(r.db.QueryRowContext(ctx, query, append(args, id)...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, models.ErrNotFound
	case database.IsUniqueViolation(err):
		return nil, models.ErrAlreadyExists
	case err != nil:
		return nil, fmt.Errorf("update client %d: %w", id, err)
	}
	return c, nil
}
