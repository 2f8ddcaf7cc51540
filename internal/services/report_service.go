// Package services wires the report pipelines to their collaborators:
// the row source, the artifact sink, the archive and the event publisher.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"finreport/internal/amqp"
	"finreport/internal/core"
	"finreport/internal/report"
	"finreport/internal/storage"
	"finreport/internal/table"
)

// ReportService loads the operations table, runs a pure report pipeline,
// and then persists and announces the result as a second explicit step.
// Sink, archive and events are all optional; a nil archive or event client
// is skipped, and their failures never fail the report itself.
type ReportService struct {
	source    table.RowSource
	dashboard *report.DashboardBuilder
	sink      *storage.FileSink
	archive   *storage.ReportArchive
	events    *amqp.Client
	logger    *slog.Logger
}

func NewReportService(
	source table.RowSource,
	dashboard *report.DashboardBuilder,
	sink *storage.FileSink,
	archive *storage.ReportArchive,
	events *amqp.Client,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		source:    source,
		dashboard: dashboard,
		sink:      sink,
		archive:   archive,
		events:    events,
		logger:    logger,
	}
}

// SpendingByCategory computes the category spending report and writes its
// artifact. filename may carry a {timestamp} placeholder; empty means the
// sink's default path.
func (s *ReportService) SpendingByCategory(ctx context.Context, category, targetDate, filename string) (report.CategoryReport, error) {
	tbl, err := s.source.Load(ctx)
	if err != nil {
		return report.CategoryReport{}, fmt.Errorf("load operations: %w", err)
	}

	rep, err := report.SpendingByCategory(tbl, category, targetDate)
	if err != nil {
		return rep, err
	}
	s.logDiagnostics(ctx, report.KindSpending, rep.Diagnostics)

	if err := s.persist(ctx, report.KindSpending, filename, rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// CashbackByCategory computes cashback totals for one month.
func (s *ReportService) CashbackByCategory(ctx context.Context, year, month int) (report.CashbackReport, error) {
	tbl, err := s.source.Load(ctx)
	if err != nil {
		return report.CashbackReport{}, fmt.Errorf("load operations: %w", err)
	}

	rep, err := report.CashbackByCategory(tbl, year, month)
	if err != nil {
		return rep, err
	}
	s.logDiagnostics(ctx, report.KindCashback, rep.Diagnostics)

	s.record(ctx, report.KindCashback, "", rep)
	return rep, nil
}

// Dashboard builds the composed dashboard report for the given timestamp.
func (s *ReportService) Dashboard(ctx context.Context, timestamp string) (*report.Dashboard, error) {
	tbl, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	d, err := s.dashboard.Build(ctx, timestamp, tbl)
	if err != nil {
		return nil, err
	}

	s.record(ctx, report.KindDashboard, "", d)
	return d, nil
}

// persist writes the artifact file, then records it. A sink failure fails
// the call: the caller asked for the artifact. Without a sink nothing was
// written, so the record carries no artifact name.
func (s *ReportService) persist(ctx context.Context, kind, filename string, payload any) error {
	var name string
	if s.sink != nil {
		written, err := s.sink.Write(filename, payload)
		if err != nil {
			return fmt.Errorf("persist %s report: %w", kind, err)
		}
		name = written
		s.logger.InfoContext(ctx, "report artifact written", "kind", kind, "path", written)
	}
	s.record(ctx, kind, name, payload)
	return nil
}

// record archives the report and publishes the event. Both are best
// effort: failures are logged, the report already succeeded.
func (s *ReportService) record(ctx context.Context, kind, name string, payload any) {
	if s.archive != nil {
		if _, err := s.archive.Save(ctx, kind, name, payload); err != nil {
			s.logger.ErrorContext(ctx, "failed to archive report", "kind", kind, "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishReportGenerated(ctx, kind, name); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish report event", "kind", kind, "error", err)
		}
	}
}

// Close releases the archive and event connections.
func (s *ReportService) Close() error {
	var errs []error

	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close report service: %v", errs)
	}
	return nil
}

func (s *ReportService) logDiagnostics(ctx context.Context, kind string, diags []core.Diagnostic) {
	for _, d := range diags {
		s.logger.WarnContext(ctx, "row dropped during report",
			"kind", kind, "row", d.Row, "column", d.Column, "reason", d.Reason)
	}
}
