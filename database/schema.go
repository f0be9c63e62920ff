package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the structured entity tables and the vector
// index tables. All statements are idempotent; dimension sizes the
// pgvector column for knowledge-base chunks.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		`CREATE TABLE IF NOT EXISTS departments (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			code VARCHAR(10) UNIQUE NOT NULL,
			hod VARCHAR(100),
			faculty_count INT,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			code VARCHAR(20) UNIQUE NOT NULL,
			department_id INT REFERENCES departments(id),
			level VARCHAR(20),
			duration_years INT,
			total_seats INT,
			fee_per_year DOUBLE PRECISION,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS faculty (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			designation VARCHAR(100),
			department_code VARCHAR(10),
			qualification VARCHAR(200),
			specialization VARCHAR(200),
			email VARCHAR(100)
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			event_type VARCHAR(50),
			description TEXT,
			date VARCHAR(20),
			venue VARCHAR(100),
			is_upcoming BOOLEAN DEFAULT TRUE,
			registration_link VARCHAR(300)
		)`,
		`CREATE TABLE IF NOT EXISTS hostel_info (
			id SERIAL PRIMARY KEY,
			hostel_name VARCHAR(100) NOT NULL,
			hostel_type VARCHAR(20),
			room_type VARCHAR(50),
			fee_per_year DOUBLE PRECISION,
			capacity INT,
			amenities TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS faqs (
			id SERIAL PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS kb_collections (
			collection TEXT PRIMARY KEY,
			generation UUID NOT NULL,
			chunk_count INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kb_chunks (
			id UUID PRIMARY KEY,
			collection TEXT NOT NULL,
			generation UUID NOT NULL,
			category TEXT,
			source TEXT,
			content TEXT NOT NULL,
			embedding VECTOR(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dimension),
		"CREATE INDEX IF NOT EXISTS idx_kb_chunks_generation ON kb_chunks(collection, generation)",
		"CREATE INDEX IF NOT EXISTS idx_kb_chunks_embedding ON kb_chunks USING ivfflat (embedding vector_l2_ops)",
		"CREATE INDEX IF NOT EXISTS idx_courses_department ON courses(department_id)",
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return nil
}
