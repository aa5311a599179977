package report

import (
	"context"
	"errors"

	"github.com/wonny/vulture/internal/contracts"
)

// MultiSink writes every section to all of its sinks
type MultiSink []contracts.ReportSink

// WriteSection implements contracts.ReportSink; every sink is attempted
func (m MultiSink) WriteSection(ctx context.Context, section contracts.Section) error {
	var errs []error
	for _, sink := range m {
		if err := sink.WriteSection(ctx, section); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
