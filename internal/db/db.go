package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS employees (
            emp_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            age INT NOT NULL,
            dept TEXT NOT NULL,
            salary DOUBLE PRECISION NOT NULL,
            role TEXT NOT NULL DEFAULT 'employee'
        );`,
		`CREATE TABLE IF NOT EXISTS departments (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );`,
		`CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            emp_id TEXT NOT NULL REFERENCES employees(emp_id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            marked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE(emp_id)
        );`,
		`CREATE TABLE IF NOT EXISTS leave_requests (
            id SERIAL PRIMARY KEY,
            emp_id TEXT NOT NULL REFERENCES employees(emp_id) ON DELETE CASCADE,
            leave_date DATE NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'PENDING',
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            decided_at TIMESTAMPTZ,
            decided_by TEXT
        );`,
		// One open request per employee and date; the database, not the
		// application, is the arbiter under concurrent submissions.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_leave
            ON leave_requests (emp_id, leave_date)
            WHERE status = 'PENDING';`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            emp_id TEXT NOT NULL REFERENCES employees(emp_id) ON DELETE CASCADE,
            leave_id INT REFERENCES leave_requests(id) ON DELETE SET NULL,
            message TEXT NOT NULL,
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
            id SERIAL PRIMARY KEY,
            emp_id TEXT NOT NULL,
            emp_name TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            edited_at TIMESTAMPTZ,
            deleted BOOLEAN NOT NULL DEFAULT FALSE
        );`,
		// Backing counter for the human-readable employee id suffix.
		`CREATE SEQUENCE IF NOT EXISTS employee_number_seq START 1;`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
