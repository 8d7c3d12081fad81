// Package db persists JudgeResults and loads a problem's TestCases from
// PostgreSQL. Grounded on judging-service/db/db.go; the query shapes
// are unchanged, the result/test-case structs are adapted to this
// module's model.JudgeResult/model.CaseResult.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/codecourt/judge-engine/config"
	"github.com/codecourt/judge-engine/metrics"
	"github.com/codecourt/judge-engine/model"
)

// DB is a PostgreSQL-backed result store.
type DB struct {
	db *sql.DB
}

// New opens and pings a connection built from cfg's database settings.
func New(cfg *config.Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: sqlDB}, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// GetTestCases loads the test cases registered for problemID, in
// ascending id order, matching spec.md §3's case ordering requirement.
func (d *DB) GetTestCases(problemID string) ([]model.TestCase, error) {
	start := time.Now()
	query := `
		SELECT id, problem_id, input, expected_output, is_hidden
		FROM test_cases
		WHERE problem_id = $1
		ORDER BY id
	`

	rows, err := d.db.Query(query, problemID)
	if err != nil {
		metrics.RecordDatabaseOperation("judge-engine", "select", "test_cases", "error")
		return nil, fmt.Errorf("failed to query test cases: %w", err)
	}
	defer rows.Close()

	var testCases []model.TestCase
	for rows.Next() {
		var tc model.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.Input, &tc.ExpectedOutput, &tc.IsHidden); err != nil {
			metrics.RecordDatabaseOperation("judge-engine", "select", "test_cases", "error")
			return nil, fmt.Errorf("failed to scan test case: %w", err)
		}
		testCases = append(testCases, tc)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordDatabaseOperation("judge-engine", "select", "test_cases", "error")
		return nil, fmt.Errorf("error iterating test cases: %w", err)
	}

	metrics.RecordDatabaseOperation("judge-engine", "select", "test_cases", "ok")
	metrics.ObserveDatabaseOperationDuration("judge-engine", "select", "test_cases", time.Since(start).Seconds())
	return testCases, nil
}

// SaveJudgeResult upserts result and its per-case rows in a single
// transaction, matching judging-service/db.DB.SaveJudgingResult.
func (d *DB) SaveJudgeResult(result *model.JudgeResult) error {
	start := time.Now()
	tx, err := d.db.Begin()
	if err != nil {
		metrics.RecordDatabaseOperation("judge-engine", "upsert", "judge_results", "error")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	resultQuery := `
		INSERT INTO judge_results (
			submission_id, status, time_used_ms, memory_used_kb,
			error_message, judged_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (submission_id) DO UPDATE SET
			status = EXCLUDED.status,
			time_used_ms = EXCLUDED.time_used_ms,
			memory_used_kb = EXCLUDED.memory_used_kb,
			error_message = EXCLUDED.error_message,
			judged_at = EXCLUDED.judged_at
	`
	if _, err := tx.Exec(
		resultQuery,
		result.SubmissionID, result.Verdict, result.TimeUsedMs, result.MemoryUsedKB,
		result.ErrorMessage, result.JudgedAt,
	); err != nil {
		metrics.RecordDatabaseOperation("judge-engine", "upsert", "judge_results", "error")
		return fmt.Errorf("failed to insert judge result: %w", err)
	}

	caseQuery := `
		INSERT INTO case_results (
			submission_id, test_case_id, status, actual_output,
			time_used_ms, memory_used_kb
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (submission_id, test_case_id) DO UPDATE SET
			status = EXCLUDED.status,
			actual_output = EXCLUDED.actual_output,
			time_used_ms = EXCLUDED.time_used_ms,
			memory_used_kb = EXCLUDED.memory_used_kb
	`
	for _, cr := range result.CaseResults {
		if _, err := tx.Exec(
			caseQuery,
			result.SubmissionID, cr.CaseID, cr.Verdict, cr.ActualOutput,
			cr.TimeUsedMs, cr.MemoryUsedKB,
		); err != nil {
			metrics.RecordDatabaseOperation("judge-engine", "upsert", "case_results", "error")
			return fmt.Errorf("failed to insert case result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDatabaseOperation("judge-engine", "upsert", "judge_results", "error")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	metrics.RecordDatabaseOperation("judge-engine", "upsert", "judge_results", "ok")
	metrics.ObserveDatabaseOperationDuration("judge-engine", "upsert", "judge_results", time.Since(start).Seconds())
	return nil
}
