package mock

import (
	"context"

	"github.com/sportsense/sportsense"
)

var _ sportsense.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of sportsense.ReportService.
type ReportService struct {
	UpsertReportFn func(ctx context.Context, report *sportsense.ReportDocument) error
	FindReportFn   func(ctx context.Context, date, language string) (*sportsense.ReportDocument, error)
	FindReportsFn  func(ctx context.Context, filter sportsense.ReportFilter) ([]*sportsense.ReportDocument, error)
}

func (s *ReportService) UpsertReport(ctx context.Context, report *sportsense.ReportDocument) error {
	return s.UpsertReportFn(ctx, report)
}

func (s *ReportService) FindReport(ctx context.Context, date, language string) (*sportsense.ReportDocument, error) {
	return s.FindReportFn(ctx, date, language)
}

func (s *ReportService) FindReports(ctx context.Context, filter sportsense.ReportFilter) ([]*sportsense.ReportDocument, error) {
	return s.FindReportsFn(ctx, filter)
}

var _ sportsense.ReportGenerator = (*ReportGenerator)(nil)

// ReportGenerator is a mock implementation of sportsense.ReportGenerator.
type ReportGenerator struct {
	GenerateFn func(ctx context.Context, date, language string) (*sportsense.ReportDocument, error)
}

func (g *ReportGenerator) Generate(ctx context.Context, date, language string) (*sportsense.ReportDocument, error) {
	return g.GenerateFn(ctx, date, language)
}
