// Package dashboard runs the read-only cross-entity rollups.
package dashboard

import (
	"context"
	"fmt"

	"staffing-api/internal/common/database"
	"staffing-api/internal/models"
	"staffing-api/internal/repository/assignment"
)

const (
	recentPlacementLimit  = 5
	jobsByClientLimit     = 10
	recentCandidateLimit  = 5
	recentJobOrderLimit   = 5
	recentAssignmentLimit = 10
)

type Repository struct {
	db database.DBTX
}

func New(db database.DBTX) *Repository {
	return &Repository{db: db}
}

// Stats loads every dashboard figure except the skill tally, which is computed
// from OpenJobSkills by the caller.
func (r *Repository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{TopSkills: make([]models.SkillCount, 0)}

	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM candidates WHERE status = 'active'),
		       (SELECT COUNT(*) FROM job_orders WHERE status = 'open'),
		       (SELECT COUNT(*) FROM clients WHERE status = 'active'),
		       (SELECT COUNT(*) FROM assignments)`).
		Scan(&stats.Stats.ActiveCandidates, &stats.Stats.OpenJobs, &stats.Stats.ActiveClients, &stats.Stats.TotalAssignments)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	if stats.AssignmentsByStatus, err = r.assignmentsByStatus(ctx); err != nil {
		return nil, err
	}

	stats.RecentPlacements, err = assignment.QueryViews(ctx, r.db, fmt.Sprintf(`
		WHERE a.status = 'placed' AND a.updated_at >= NOW() - INTERVAL '30 days'
		ORDER BY a.updated_at DESC
		LIMIT %d`, recentPlacementLimit))
	if err != nil {
		return nil, fmt.Errorf("recent placements: %w", err)
	}

	if stats.JobsByClient, err = r.jobsByClient(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repository) assignmentsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) AS count
		FROM assignments
		GROUP BY status
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("assignments by status: %w", err)
	}
	defer rows.Close()

	out := make([]models.StatusCount, 0)
	for rows.Next() {
		var s models.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("scan assignment status: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) jobsByClient(ctx context.Context) ([]models.ClientJobCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.company_name, COUNT(jo.id) AS job_count
		FROM clients c
		LEFT JOIN job_orders jo ON jo.client_id = c.id AND jo.status = 'open'
		WHERE c.status = 'active'
		GROUP BY c.id, c.company_name
		ORDER BY job_count DESC
		LIMIT $1`, jobsByClientLimit)
	if err != nil {
		return nil, fmt.Errorf("jobs by client: %w", err)
	}
	defer rows.Close()

	out := make([]models.ClientJobCount, 0)
	for rows.Next() {
		var c models.ClientJobCount
		if err := rows.Scan(&c.CompanyName, &c.JobCount); err != nil {
			return nil, fmt.Errorf("scan jobs by client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// OpenJobSkills returns the raw required_skills text of every open job order.
func (r *Repository) OpenJobSkills(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT required_skills
		FROM job_orders
		WHERE status = 'open' AND required_skills IS NOT NULL
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("open job skills: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan open job skills: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecentActivity returns the newest candidates, job orders and assignments.
func (r *Repository) RecentActivity(ctx context.Context) (*models.RecentActivity, error) {
	act := &models.RecentActivity{
		RecentCandidates: make([]models.RecentCandidate, 0),
		RecentJobOrders:  make([]models.RecentJobOrder, 0),
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, skills, status, created_at
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1`, recentCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("recent candidates: %w", err)
	}
	for rows.Next() {
		var c models.RecentCandidate
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Skills, &c.Status, &c.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recent candidate: %w", err)
		}
		act.RecentCandidates = append(act.RecentCandidates, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent candidates: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT jo.id, jo.title, c.company_name, jo.status, jo.created_at
		FROM job_orders jo
		JOIN clients c ON c.id = jo.client_id
		ORDER BY jo.created_at DESC
		LIMIT $1`, recentJobOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("recent job orders: %w", err)
	}
	for rows.Next() {
		var jo models.RecentJobOrder
		if err := rows.Scan(&jo.ID, &jo.Title, &jo.CompanyName, &jo.Status, &jo.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recent job order: %w", err)
		}
		act.RecentJobOrders = append(act.RecentJobOrders, jo)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent job orders: %w", err)
	}

	act.RecentAssignments, err = assignment.QueryViews(ctx, r.db,
		" ORDER BY a.assigned_date DESC LIMIT $1", recentAssignmentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent assignments: %w", err)
	}
	return act, nil
}
