package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

// Service owns the reference datasets doctors pick from during consultations
// and the platform analytics counters.
type Service struct {
	reference repository.ReferenceRepository
	users     repository.UserRepository
}

func NewService(reference repository.ReferenceRepository, users repository.UserRepository) *Service {
	return &Service{reference: reference, users: users}
}

func (s *Service) CreateSymptom(ctx context.Context, name string) (*model.Symptom, error) {
	symptom := &model.Symptom{Base: model.Base{ID: uuid.New()}, Name: name}
	if err := s.reference.CreateSymptom(ctx, symptom); err != nil {
		return nil, fmt.Errorf("failed to create symptom: %w", err)
	}
	return symptom, nil
}

func (s *Service) ListSymptoms(ctx context.Context) ([]*model.Symptom, error) {
	return s.reference.ListSymptoms(ctx)
}

func (s *Service) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	if err := s.reference.DeleteSymptom(ctx, id); err != nil {
		return errors.NotFound("symptom", err)
	}
	return nil
}

func (s *Service) CreateMedicine(ctx context.Context, name, description string) (*model.Medicine, error) {
	medicine := &model.Medicine{Base: model.Base{ID: uuid.New()}, Name: name, Description: description}
	if err := s.reference.CreateMedicine(ctx, medicine); err != nil {
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}
	return medicine, nil
}

func (s *Service) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	return s.reference.ListMedicines(ctx)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if err := s.reference.DeleteMedicine(ctx, id); err != nil {
		return errors.NotFound("medicine", err)
	}
	return nil
}

func (s *Service) CreateICDCode(ctx context.Context, code, description string) (*model.ICDCode, error) {
	icd := &model.ICDCode{Base: model.Base{ID: uuid.New()}, Code: code, Description: description}
	if err := s.reference.CreateICDCode(ctx, icd); err != nil {
		return nil, fmt.Errorf("failed to create ICD code: %w", err)
	}
	return icd, nil
}

func (s *Service) ListICDCodes(ctx context.Context) ([]*model.ICDCode, error) {
	return s.reference.ListICDCodes(ctx)
}

func (s *Service) DeleteICDCode(ctx context.Context, id uuid.UUID) error {
	if err := s.reference.DeleteICDCode(ctx, id); err != nil {
		return errors.NotFound("ICD code", err)
	}
	return nil
}

func (s *Service) ReportIssue(ctx context.Context, reporterID, subject, body string) (*model.Issue, error) {
	issue := &model.Issue{
		Base:       model.Base{ID: uuid.New()},
		ReporterID: reporterID,
		Subject:    subject,
		Body:       body,
		Status:     model.IssueStatusOpen,
	}
	if err := s.reference.CreateIssue(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return issue, nil
}

func (s *Service) ListIssues(ctx context.Context, status model.IssueStatus) ([]*model.Issue, error) {
	return s.reference.ListIssues(ctx, status)
}

func (s *Service) ResolveIssue(ctx context.Context, id uuid.UUID) error {
	issue := &model.Issue{Base: model.Base{ID: id}, Status: model.IssueStatusResolved}
	if err := s.reference.UpdateIssue(ctx, issue); err != nil {
		return errors.NotFound("issue", err)
	}
	return nil
}

// Counts returns the dashboard totals.
func (s *Service) Counts(ctx context.Context) (*model.AnalyticsCounts, error) {
	counts, err := s.users.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics counts: %w", err)
	}
	return counts, nil
}
