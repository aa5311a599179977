// Package report persists processed sections.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// Header is the column order of every CSV section
var Header = []string{"Title", "Stock Symbol", "Position", "OP Karma", "URL"}

// CSVSink writes one CSV file per section into a directory
type CSVSink struct {
	dir    string
	stamp  string
	logger *logger.Logger
}

// NewCSVSink creates a sink writing <dir>/<category>_<stamp>.csv, stamped with startedAt
func NewCSVSink(dir string, startedAt time.Time, log *logger.Logger) *CSVSink {
	return &CSVSink{
		dir:    dir,
		stamp:  startedAt.UTC().Format("20060102_150405"),
		logger: log.Component("report"),
	}
}

// Path returns the file a section is written to
func (s *CSVSink) Path(section contracts.Section) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(section.Category)
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", name, s.stamp))
}

// WriteSection implements contracts.ReportSink
func (s *CSVSink) WriteSection(ctx context.Context, section contracts.Section) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	path := s.Path(section)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range section.Rows {
		record := []string{row.Title, row.Symbol, row.Positions, row.ReputationText(), row.URL}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.PostID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"section": section.Label,
		"rows":    len(section.Rows),
		"path":    path,
	}).Info("CSV section written")

	return f.Close()
}
