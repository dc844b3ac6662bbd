package analysis

import (
	"context"

	"github.com/kapu/creator-pulse-go/internal/domain"
)

// Optional collaborators are injected by the composition root rather than
// probed for at runtime. Both default to no-ops.

// SentimentProvider summarizes the sentiment of a sample of titles or texts.
type SentimentProvider interface {
	Summarize(ctx context.Context, texts []string) (*domain.SentimentSummary, error)
}

// ReportExporter receives the finished analysis for export (PDF, file, ...).
type ReportExporter interface {
	ExportChannel(ctx context.Context, result *domain.ChannelAnalysis) error
	ExportCommunity(ctx context.Context, result *domain.CommunityAnalysis) error
}

type NoopSentimentProvider struct{}

func (NoopSentimentProvider) Summarize(context.Context, []string) (*domain.SentimentSummary, error) {
	return nil, nil
}

type NoopReportExporter struct{}

func (NoopReportExporter) ExportChannel(context.Context, *domain.ChannelAnalysis) error { return nil }
func (NoopReportExporter) ExportCommunity(context.Context, *domain.CommunityAnalysis) error {
	return nil
}
