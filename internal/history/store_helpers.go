package history

import (
	"database/sql"
	"errors"
	"time"
)

// timestampLayout keeps a fixed fraction width so stored values sort
// chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, run_id, created_at, status, script_path, config_path, demo_directory, log_count, skipped_count, span_count, zero_length_count"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		createdRaw string
		status     string
		scriptPath sql.NullString
		configPath sql.NullString
		demoDir    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&createdRaw,
		&status,
		&scriptPath,
		&configPath,
		&demoDir,
		&run.LogCount,
		&run.SkippedCount,
		&run.SpanCount,
		&run.ZeroLengthCount,
	); err != nil {
		return nil, err
	}
	run.Status = Status(status)
	run.ScriptPath = scriptPath.String
	run.ConfigPath = configPath.String
	run.DemoDirectory = demoDir.String
	if created, err := parseTimeString(createdRaw); err == nil {
		run.CreatedAt = created
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
