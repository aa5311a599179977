package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// reportTable is the destination of PostgresSink
var reportTable = pgx.Identifier{"vulture", "report_rows"}

var reportColumns = []string{
	"run_id", "category", "label", "post_id", "title", "symbol",
	"positions", "reputation", "url", "author", "created_at",
}

// Querier is the part of pgxpool.Pool the sink uses
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresSink stores rows in vulture.report_rows tagged with the run ID
// ⭐ SSOT: 리포트 DB 저장은 여기서만
type PostgresSink struct {
	db     Querier
	runID  uuid.UUID
	logger *logger.Logger
}

// NewPostgresSink creates a sink for one run
func NewPostgresSink(db Querier, runID uuid.UUID, log *logger.Logger) *PostgresSink {
	return &PostgresSink{
		db:     db,
		runID:  runID,
		logger: log.Component("report"),
	}
}

// EnsureSchema creates the report table if missing
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `CREATE SCHEMA IF NOT EXISTS vulture`); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS vulture.report_rows (
			run_id      TEXT        NOT NULL,
			category    TEXT        NOT NULL,
			label       TEXT        NOT NULL,
			post_id     TEXT        NOT NULL,
			title       TEXT        NOT NULL,
			symbol      TEXT,
			positions   TEXT        NOT NULL,
			reputation  INTEGER,
			url         TEXT        NOT NULL,
			author      TEXT,
			created_at  TIMESTAMPTZ,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (run_id, category, post_id)
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create report table: %w", err)
	}
	return nil
}

// WriteSection implements contracts.ReportSink
func (s *PostgresSink) WriteSection(ctx context.Context, section contracts.Section) error {
	if len(section.Rows) == 0 {
		return nil
	}

	runID := s.runID.String()
	rows := make([][]any, 0, len(section.Rows))
	for _, r := range section.Rows {
		rows = append(rows, []any{
			runID,
			section.Category,
			section.Label,
			r.PostID,
			r.Title,
			nullable(r.Symbol),
			r.Positions,
			r.Reputation,
			r.URL,
			nullable(r.Author),
			r.CreatedAt,
		})
	}

	n, err := s.db.CopyFrom(ctx, reportTable, reportColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy %s rows: %w", section.Category, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"section": section.Label,
		"rows":    n,
	}).Info("Postgres section written")

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
