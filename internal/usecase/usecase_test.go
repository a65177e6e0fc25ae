package usecase_test

import (
	"context"

	"candidate-pipeline-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repository
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) GetByCandidateID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetResume(ctx context.Context, candidateID string) ([]byte, string, error) {
	args := m.Called(ctx, candidateID)
	var blob []byte
	if args.Get(0) != nil {
		blob = args.Get(0).([]byte)
	}
	return blob, args.String(1), args.Error(2)
}

func (m *MockCandidateRepo) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Candidate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, candidateID string) error {
	return m.Called(ctx, candidateID).Error(0)
}

func (m *MockCandidateRepo) ClearInterview(ctx context.Context, candidateID string) error {
	return m.Called(ctx, candidateID).Error(0)
}

func (m *MockCandidateRepo) FindByEmailJobClient(ctx context.Context, email, jobID, clientName string) (*domain.Candidate, error) {
	args := m.Called(ctx, email, jobID, clientName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByContactJobClient(ctx context.Context, contactNumber, jobID, clientName string) (*domain.Candidate, error) {
	args := m.Called(ctx, contactNumber, jobID, clientName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

// Mock Resume Store
type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) Save(candidateID, filename string, data []byte) (string, error) {
	args := m.Called(candidateID, filename, data)
	return args.String(0), args.Error(1)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyScheduled(c *domain.Candidate) error {
	return m.Called(c).Error(0)
}

func (m *MockNotifier) NotifyUpdated(c *domain.Candidate) error {
	return m.Called(c).Error(0)
}

// pdfBytes is a minimal payload carrying the %PDF signature.
var pdfBytes = []byte("%PDF-1.4 test resume content")

func validSubmission() *domain.Candidate {
	return &domain.Candidate{
		JobID:            "JOB101",
		UserID:           "user1",
		FullName:         "Asha Verma",
		CandidateEmailID: "asha.verma@example.com",
		ContactNumber:    "9876543210",
		ClientName:       "Acme Corp",
	}
}
