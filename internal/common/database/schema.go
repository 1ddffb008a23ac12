package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id               BIGSERIAL PRIMARY KEY,
		first_name       VARCHAR(100) NOT NULL,
		last_name        VARCHAR(100) NOT NULL,
		email            VARCHAR(255) NOT NULL,
		phone            VARCHAR(20),
		skills           TEXT,
		experience_years NUMERIC(3,1) CHECK (experience_years BETWEEN 0 AND 50),
		resume_url       VARCHAR(500),
		status           VARCHAR(20) NOT NULL DEFAULT 'active'
		                 CHECK (status IN ('active', 'inactive', 'placed')),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS candidates_email_key ON candidates (LOWER(email))`,
	`CREATE INDEX IF NOT EXISTS candidates_status_idx ON candidates (status)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id             BIGSERIAL PRIMARY KEY,
		company_name   VARCHAR(255) NOT NULL UNIQUE,
		contact_person VARCHAR(100),
		email          VARCHAR(255),
		phone          VARCHAR(20),
		address        TEXT,
		status         VARCHAR(20) NOT NULL DEFAULT 'active'
		               CHECK (status IN ('active', 'inactive')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS job_orders (
		id                  BIGSERIAL PRIMARY KEY,
		title               VARCHAR(255) NOT NULL,
		description         TEXT,
		required_skills     TEXT,
		experience_required NUMERIC(3,1) CHECK (experience_required BETWEEN 0 AND 50),
		client_id           BIGINT NOT NULL REFERENCES clients (id),
		salary_range        VARCHAR(100),
		location            VARCHAR(255),
		status              VARCHAR(20) NOT NULL DEFAULT 'open'
		                    CHECK (status IN ('open', 'closed', 'filled')),
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS job_orders_client_idx ON job_orders (client_id)`,
	`CREATE INDEX IF NOT EXISTS job_orders_status_idx ON job_orders (status)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id            BIGSERIAL PRIMARY KEY,
		candidate_id  BIGINT NOT NULL REFERENCES candidates (id),
		job_order_id  BIGINT NOT NULL REFERENCES job_orders (id),
		status        VARCHAR(20) NOT NULL DEFAULT 'applied'
		              CHECK (status IN ('applied', 'interviewing', 'offered', 'placed', 'rejected')),
		notes         TEXT,
		start_date    TIMESTAMPTZ,
		end_date      TIMESTAMPTZ,
		assigned_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (candidate_id, job_order_id)
	)`,
	`CREATE INDEX IF NOT EXISTS assignments_job_order_idx ON assignments (job_order_id)`,
}

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
