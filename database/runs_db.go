// Package database зберігає історію прогонів перевірки у SQLite.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"zbdcheck/reconcile"
)

// RunsDB обгортка над базою історії прогонів.
type RunsDB struct {
	conn *sql.DB
}

// CheckRun один збережений прогін.
type CheckRun struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	PeriodYear    int       `json:"period_year"`
	PeriodMonth   int       `json:"period_month"`
	TabelFile     string    `json:"tabel_file"`
	WordFiles     []string  `json:"word_files"`
	OutputFile    string    `json:"output_file"`
	PeopleChecked int       `json:"people_checked"`
	NotFound      int       `json:"people_not_found"`
	ErrorCount    int       `json:"error_count"`
	WarningCount  int       `json:"warning_count"`
	MismatchCount int       `json:"mismatch_count"`
	DurationMS    int64     `json:"duration_ms"`
}

// OpenRunsDB відкриває (створюючи за потреби) базу історії та застосовує міграції.
func OpenRunsDB(path string) (*RunsDB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити БД %s: %w", path, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("БД %s недоступна: %w", path, err)
	}

	db := &RunsDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закриває з'єднання з БД.
func (db *RunsDB) Close() error {
	return db.conn.Close()
}

func (db *RunsDB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS check_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			period_year INTEGER NOT NULL,
			period_month INTEGER NOT NULL,
			tabel_file TEXT NOT NULL,
			word_files TEXT NOT NULL,
			output_file TEXT NOT NULL,
			people_checked INTEGER NOT NULL DEFAULT 0,
			people_not_found INTEGER NOT NULL DEFAULT 0,
			error_count INTEGER NOT NULL DEFAULT 0,
			warning_count INTEGER NOT NULL DEFAULT 0,
			mismatch_count INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS check_mismatches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES check_runs(id) ON DELETE CASCADE,
			person TEXT NOT NULL,
			day DATE NOT NULL,
			expected TEXT NOT NULL,
			actual TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_check_mismatches_run_id ON check_mismatches(run_id)`,
	}

	for _, statement := range statements {
		if _, err := db.conn.Exec(statement); err != nil {
			return fmt.Errorf("помилка міграції БД: %w", err)
		}
	}
	return nil
}

// SaveRun зберігає підсумок прогону разом із розбіжностями. Повертає id запису.
func (db *RunsDB) SaveRun(summary *reconcile.Summary, tabelFile string, wordFiles []string) (int64, error) {
	wordFilesJSON, err := json.Marshal(wordFiles)
	if err != nil {
		return 0, fmt.Errorf("не вдалося серіалізувати список файлів: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("не вдалося почати транзакцію: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO check_runs (
			period_year, period_month, tabel_file, word_files, output_file,
			people_checked, people_not_found, error_count, warning_count,
			mismatch_count, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Period.Year, int(summary.Period.Month), tabelFile, string(wordFilesJSON),
		summary.OutputFile, summary.PeopleChecked, summary.PeopleNotFound,
		len(summary.Errors), len(summary.Warnings), len(summary.Mismatches),
		summary.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("не вдалося зберегти прогін: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("не вдалося отримати id прогону: %w", err)
	}

	for _, mismatch := range summary.Mismatches {
		_, err := tx.Exec(`
			INSERT INTO check_mismatches (run_id, person, day, expected, actual, message)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, mismatch.Person, mismatch.Day.Format("2006-01-02"),
			mismatch.Expected, mismatch.Actual, mismatch.Message,
		)
		if err != nil {
			return 0, fmt.Errorf("не вдалося зберегти розбіжність: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("не вдалося завершити транзакцію: %w", err)
	}
	return runID, nil
}

// ListRuns повертає останні прогони, новіші першими.
func (db *RunsDB) ListRuns(limit int) ([]CheckRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT id, started_at, period_year, period_month, tabel_file, word_files,
		       output_file, people_checked, people_not_found, error_count,
		       warning_count, mismatch_count, duration_ms
		FROM check_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати прогони: %w", err)
	}
	defer rows.Close()

	var runs []CheckRun
	for rows.Next() {
		var (
			run           CheckRun
			startedAt     string
			wordFilesJSON string
		)
		if err := rows.Scan(
			&run.ID, &startedAt, &run.PeriodYear, &run.PeriodMonth,
			&run.TabelFile, &wordFilesJSON, &run.OutputFile,
			&run.PeopleChecked, &run.NotFound, &run.ErrorCount,
			&run.WarningCount, &run.MismatchCount, &run.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("не вдалося прочитати прогін: %w", err)
		}

		run.StartedAt = parseTimestamp(startedAt)
		if err := json.Unmarshal([]byte(wordFilesJSON), &run.WordFiles); err != nil {
			run.WordFiles = nil
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunMismatches повертає розбіжності одного прогону.
func (db *RunsDB) RunMismatches(runID int64) ([]reconcile.Mismatch, error) {
	rows, err := db.conn.Query(`
		SELECT person, day, expected, actual, message
		FROM check_mismatches
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати розбіжності: %w", err)
	}
	defer rows.Close()

	var mismatches []reconcile.Mismatch
	for rows.Next() {
		var (
			mismatch reconcile.Mismatch
			dayRaw   string
		)
		if err := rows.Scan(&mismatch.Person, &dayRaw, &mismatch.Expected, &mismatch.Actual, &mismatch.Message); err != nil {
			return nil, fmt.Errorf("не вдалося прочитати розбіжність: %w", err)
		}
		if day, err := time.Parse("2006-01-02", strings.TrimSpace(dayRaw)); err == nil {
			mismatch.Day = day
		}
		mismatches = append(mismatches, mismatch)
	}
	return mismatches, rows.Err()
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
