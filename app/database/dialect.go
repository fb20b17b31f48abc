package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// Dialect holds the few places where Postgres and SQLite disagree. Queries
// themselves use $N placeholders, which both drivers accept.
type Dialect struct {
	Name       string
	DriverName string
	// LockSuffix is appended to a single-row SELECT to hold the row for the
	// rest of the transaction. SQLite serializes writers, so it needs none.
	LockSuffix string
	Isolation  sql.IsolationLevel
	Schema     []string
}

var postgresDialect = Dialect{
	Name:       "postgres",
	DriverName: "postgres",
	LockSuffix: " FOR UPDATE",
	Isolation:  sql.LevelReadCommitted,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			units INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS course_prerequisites (
			course_id BIGINT PRIMARY KEY,
			prerequisite_1 BIGINT,
			prerequisite_2 BIGINT,
			prerequisite_3 BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS course_corequisites (
			course_id BIGINT PRIMARY KEY,
			corequisite_1 BIGINT,
			corequisite_2 BIGINT,
			corequisite_3 BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS course_requirements (
			course_id BIGINT PRIMARY KEY,
			min_passed_units INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id BIGSERIAL PRIMARY KEY,
			course_id BIGINT NOT NULL REFERENCES courses(id),
			exam_datetime TEXT,
			capacity INT NOT NULL CHECK (capacity >= 0),
			instructor_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS section_times (
			id BIGSERIAL PRIMARY KEY,
			section_id BIGINT NOT NULL REFERENCES sections(id),
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_course_id ON sections (course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_section_times_section_id ON section_times (section_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL
		)`,
	},
}

var sqliteDialect = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	Isolation:  sql.LevelDefault,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			units INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS course_prerequisites (
			course_id INTEGER PRIMARY KEY,
			prerequisite_1 INTEGER,
			prerequisite_2 INTEGER,
			prerequisite_3 INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS course_corequisites (
			course_id INTEGER PRIMARY KEY,
			corequisite_1 INTEGER,
			corequisite_2 INTEGER,
			corequisite_3 INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS course_requirements (
			course_id INTEGER PRIMARY KEY,
			min_passed_units INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id INTEGER NOT NULL REFERENCES courses(id),
			exam_datetime TEXT,
			capacity INT NOT NULL CHECK (capacity >= 0),
			instructor_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS section_times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			section_id INTEGER NOT NULL REFERENCES sections(id),
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_course_id ON sections (course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_section_times_section_id ON section_times (section_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(150) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL
		)`,
	},
}

// DialectFor resolves a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pq":
		return postgresDialect, nil
	case "sqlite", "sqlite3":
		return sqliteDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// placeholders renders "$from, $from+1, ..." for n arguments.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
