// Package candidate persists candidates in Postgres.
package candidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"staffing-api/internal/common/database"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"

	"github.com/lib/pq"
)

const columns = `id, first_name, last_name, email, phone, skills, experience_years, resume_url, status, created_at, updated_at`

// Writable columns accepted by Update.
var writable = []string{"first_name", "last_name", "email", "phone", "skills", "experience_years", "resume_url", "status"}

type Repository struct {
	db database.DBTX
}

func New(db database.DBTX) *Repository {
	return &Repository{db: db}
}

func scan(row database.Scanner, extra ...interface{}) (*models.Candidate, error) {
	var c models.Candidate
	dest := []interface{}{
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Skills,
		&c.ExperienceYears, &c.ResumeURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func filter(f models.CandidateFilter) *querybuilder.Builder {
	b := querybuilder.New()
	if f.Search != "" {
		term := "%" + f.Search + "%"
		b.Where("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR skills ILIKE ?)", term, term, term, term)
	}
	b.WhereIf(f.Skills != "", "skills ILIKE ?", "%"+f.Skills+"%")
	b.WhereIf(f.Status != "", "status = ?", f.Status)
	if f.ExperienceMin != nil {
		b.Where("experience_years >= ?", *f.ExperienceMin)
	}
	if f.ExperienceMax != nil {
		b.Where("experience_years <= ?", *f.ExperienceMax)
	}
	return b
}

// List returns one page of candidates matching f, newest first, and the total
// number of matches.
func (r *Repository) List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, int64, error) {
	b := filter(f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates"+b.Clause(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	suffix, args := b.Paginate(f.Page)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+columns+" FROM candidates"+b.Clause()+" ORDER BY created_at DESC"+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candidate, 0)
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	return out, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	c, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM candidates WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate %d: %w", id, err)
	}
	return c, nil
}

// GetDetail loads a candidate with its assignment count and the distinct titles
// of the job orders it is assigned to.
func (r *Repository) GetDetail(ctx context.Context, id int64) (*models.CandidateDetail, error) {
	const query = `
		SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.skills, c.experience_years,
		       c.resume_url, c.status, c.created_at, c.updated_at,
		       COUNT(a.id),
		       COALESCE(array_agg(DISTINCT jo.title) FILTER (WHERE jo.title IS NOT NULL), '{}')
		FROM candidates c
		LEFT JOIN assignments a ON a.candidate_id = c.id
		LEFT JOIN job_orders jo ON jo.id = a.job_order_id
		WHERE c.id = $1
		GROUP BY c.id`

	var (
		count int64
		names pq.StringArray
	)
	c, err := scan(r.db.QueryRowContext(ctx, query, id), &count, &names)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate detail %d: %w", id, err)
	}

	projects := []string(names)
	if projects == nil {
		projects = []string{}
	}
	return &models.CandidateDetail{Candidate: *c, AssignmentCount: count, ProjectNames: projects}, nil
}

// EmailExists reports whether another candidate already uses email. excludeID
// is ignored when zero.
func (r *Repository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM candidates WHERE LOWER(email) = LOWER($1) AND id <> $2)",
		email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check candidate email: %w", err)
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error) {
	const query = `
		INSERT INTO candidates (first_name, last_name, email, phone, skills, experience_years, resume_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	c, err := scan(r.db.QueryRowContext(ctx, query,
		in.FirstName, in.LastName, in.Email, in.Phone, in.Skills, in.ExperienceYears, in.ResumeURL, in.Status))
	if database.IsUniqueViolation(err) {
		return nil, models.ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return c, nil
}

// Update applies the writable columns of patch and returns the stored row.
func (r *Repository) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error) {
	patch = patch.Only(writable...)
	if patch.Len() == 0 {
		return r.GetByID(ctx, id)
	}

	set, args := patch.SetClause(1)
	query := fmt.Sprintf("UPDATE candidates SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		set, len(args)+1, columns)

	c, err := scan(r.db.QueryRowContext(ctx, query, append(args, id)...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, models.ErrNotFound
	case database.IsUniqueViolation(err):
		return nil, models.ErrAlreadyExists
	case err != nil:
		return nil, fmt.Errorf("update candidate %d: %w", id, err)
	}
	return c, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM candidates WHERE id = $1", id)
	if database.IsForeignKeyViolation(err) {
		return models.ErrInUse
	}
	if err != nil {
		return fmt.Errorf("delete candidate %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete candidate %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) CountAssignments(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assignments WHERE candidate_id = $1", id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assignments of candidate %d: %w", id, err)
	}
	return n, nil
}

// SearchBySkill returns the active candidates whose skills contain keyword,
// case-insensitively, within the experience range. Scores are left at zero.
func (r *Repository) SearchBySkill(ctx context.Context, s models.SkillSearch) ([]models.SkillMatch, error) {
	const query = `
		SELECT id, first_name, last_name, email, skills, experience_years, status
		FROM candidates
		WHERE LOWER(skills) LIKE $1
		  AND experience_years BETWEEN $2 AND $3
		  AND status = 'active'`

	rows, err := r.db.QueryContext(ctx, query, "%"+strings.ToLower(s.Skills)+"%", s.MinExperience, s.MaxExperience)
	if err != nil {
		return nil, fmt.Errorf("search candidates by skill: %w", err)
	}
	defer rows.Close()

	out := make([]models.SkillMatch, 0)
	for rows.Next() {
		var m models.SkillMatch
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Skills, &m.ExperienceYears, &m.Status); err != nil {
			return nil, fmt.Errorf("scan skill match: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Stats computes the status, skill and experience distributions.
func (r *Repository) Stats(ctx context.Context) (*models.CandidateStats, error) {
	stats := &models.CandidateStats{
		StatusDistribution:     make([]models.StatusStat, 0),
		PopularSkills:          make([]models.SkillBucket, 0),
		ExperienceDistribution: make([]models.ExperienceBucket, 0),
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) AS count, ROUND(AVG(experience_years), 1)
		FROM candidates
		GROUP BY status
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("candidate status distribution: %w", err)
	}
	for rows.Next() {
		var s models.StatusStat
		if err := rows.Scan(&s.Status, &s.Count, &s.AvgExperience); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status distribution: %w", err)
		}
		stats.StatusDistribution = append(stats.StatusDistribution, s)
		stats.TotalCandidates += s.Count
		if s.Status == models.CandidateStatusActive {
			stats.ActiveCandidates = s.Count
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate status distribution: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT skills, COUNT(*) AS count
		FROM candidates
		WHERE status = 'active'
		GROUP BY skills
		ORDER BY count DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("candidate popular skills: %w", err)
	}
	for rows.Next() {
		var s models.SkillBucket
		if err := rows.Scan(&s.Skills, &s.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan popular skills: %w", err)
		}
		stats.PopularSkills = append(stats.PopularSkills, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate popular skills: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT CASE
		         WHEN experience_years < 2 THEN '0-2 years'
		         WHEN experience_years < 5 THEN '2-5 years'
		         WHEN experience_years < 10 THEN '5-10 years'
		         ELSE '10+ years'
		       END AS experience_range,
		       COUNT(*)
		FROM candidates
		WHERE status = 'active'
		GROUP BY experience_range
		ORDER BY experience_range`)
	if err != nil {
		return nil, fmt.Errorf("candidate experience distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b models.ExperienceBucket
		if err := rows.Scan(&b.ExperienceRange, &b.Count); err != nil {
			return nil, fmt.Errorf("scan experience distribution: %w", err)
		}
		stats.ExperienceDistribution = append(stats.ExperienceDistribution, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate experience distribution: %w", err)
	}

	return stats, nil
}

func (r *Repository) CountByStatus(ctx context.Context) (*models.StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) AS count
		FROM candidates
		GROUP BY status
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("count candidates by status: %w", err)
	}
	defer rows.Close()

	out := &models.StatusCounts{Counts: make([]models.StatusCount, 0)}
	for rows.Next() {
		var s models.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out.Counts = append(out.Counts, s)
		out.Total += s.Count
	}
	return out, rows.Err()
}

// BulkUpdateStatus sets status on every listed candidate and reports the ids
// that existed.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []int64, status string) (*models.BulkStatusResult, error) {
	rows, err := r.db.QueryContext(ctx,
		"UPDATE candidates SET status = $1, updated_at = NOW() WHERE id = ANY($2) RETURNING id",
		status, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("bulk update candidate status: %w", err)
	}
	defer rows.Close()

	res := &models.BulkStatusResult{UpdatedIDs: make([]int64, 0, len(ids))}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan updated id: %w", err)
		}
		res.UpdatedIDs = append(res.UpdatedIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bulk update candidate status: %w", err)
	}
	res.AffectedRows = int64(len(res.UpdatedIDs))
	return res, nil
}
