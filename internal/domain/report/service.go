package report

import "context"

// Generated - a rendered statutory schedule ready to download
type Generated struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReportService renders statutory contribution schedules from stored
// payslips. Read-only; safe for concurrent callers.
type ReportService interface {
	Generate(ctx context.Context, req GenerateRequest) (Generated, error)
}
