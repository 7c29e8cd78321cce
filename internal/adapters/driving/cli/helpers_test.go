package cli

import (
	"context"
	"errors"
	"time"

	"github.com/helioshr/policyqa/internal/core/domain"
	"github.com/helioshr/policyqa/internal/core/ports/driving"
)

// mockIngestService is a canned ingest service for command tests.
type mockIngestService struct {
	deleted []string
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if req.TenantID == "" {
		return nil, domain.ErrTenantScope
	}
	return &driving.IngestResult{DocumentID: "doc-1", ChunkCount: 3, Indexed: 3}, nil
}

func (m *mockIngestService) Delete(_ context.Context, tenantID, documentID string) error {
	if tenantID == "" {
		return domain.ErrTenantScope
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

func (m *mockIngestService) ListDocuments(_ context.Context, tenantID string) ([]domain.Document, error) {
	if tenantID == "" {
		return nil, domain.ErrTenantScope
	}
	return []domain.Document{
		{ID: "doc-1", TenantID: tenantID, Title: "Employee Handbook.pdf",
			UploadedBy: "hr@example.com", UploadedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
	}, nil
}

// mockAnswerService replies with a fixed answer.
type mockAnswerService struct {
	err error
}

func (m *mockAnswerService) Ask(_ context.Context, tenantID, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if tenantID == "" {
		return nil, domain.ErrTenantScope
	}
	return &domain.Answer{
		Text: "The notice period is 30 days.",
		Matches: []domain.ScoredChunk{
			{ChunkID: "c-1", DocumentID: "doc-1", Content: "Notice period is 30 days.", Score: 0.82},
		},
	}, nil
}

var errMockAnswer = errors.New("backend unavailable")

// setupTestServices injects mock services and returns a cleanup func.
func setupTestServices() func() {
	oldIngest, oldAnswer := ingestService, answerService
	oldTenant := tenantID
	ingestService = &mockIngestService{}
	answerService = &mockAnswerService{}
	tenantID = "acme"
	return func() {
		ingestService, answerService = oldIngest, oldAnswer
		tenantID = oldTenant
	}
}
