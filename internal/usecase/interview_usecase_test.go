package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scheduledCandidate() *domain.Candidate {
	c := validSubmission()
	c.CandidateID = "CAND0001"
	when := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	duration := 45
	zoom := "https://zoom.us/j/123"
	level := domain.InterviewLevelInternal
	c.InterviewDateTime = &when
	c.Duration = &duration
	c.ZoomLink = &zoom
	c.InterviewLevel = &level
	c.ClientEmail = "client@acme.example.com"
	return c
}

func internalRequest() *domain.InterviewDetails {
	when := time.Date(2026, 9, 20, 14, 30, 0, 0, time.UTC)
	duration := 60
	return &domain.InterviewDetails{
		CandidateID:       "CAND0001",
		InterviewDateTime: &when,
		Duration:          &duration,
		ZoomLink:          "https://zoom.us/j/456",
		UserEmail:         "recruiter@agency.example.com",
		ClientEmail:       "client@acme.example.com",
		ClientName:        "Acme Corp",
		InterviewLevel:    domain.InterviewLevelInternal,
	}
}

func TestScheduleValidation(t *testing.T) {
	t.Run("Should require a candidate ID", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockCandidateRepo), new(MockNotifier))

		_, err := uc.Schedule(context.Background(), "user1", &domain.InterviewDetails{})
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "Candidate ID")
	})

	t.Run("Should 404 when the candidate does not exist", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(nil, nil)

		_, err := uc.Schedule(context.Background(), "user1", internalRequest())
		assertCode(t, err, 404)
	})

	t.Run("Should 403 when the candidate belongs to another user", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		_, err := uc.Schedule(context.Background(), "someone-else", internalRequest())
		assertCode(t, err, 403)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should conflict when an interview is already scheduled", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(scheduledCandidate(), nil)

		_, err := uc.Schedule(context.Background(), "user1", internalRequest())
		assertCode(t, err, 409)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Internal interview without zoom link fails with no mutation", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		req := internalRequest()
		req.ZoomLink = ""
		_, err := uc.Schedule(context.Background(), "user1", req)
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "Zoom link")
		assert.Nil(t, c.InterviewDateTime)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Internal interview without client email fails", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		req := internalRequest()
		req.ClientEmail = ""
		_, err := uc.Schedule(context.Background(), "user1", req)
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "Client email")
	})
}

func TestScheduleSuccess(t *testing.T) {
	t.Run("Should persist interview fields and notify", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyScheduled", c).Return(nil)

		req := internalRequest()
		receipt, err := uc.Schedule(context.Background(), "user1", req)
		require.NoError(t, err)

		assert.Equal(t, req.InterviewDateTime, c.InterviewDateTime)
		assert.Equal(t, req.Duration, c.Duration)
		require.NotNil(t, c.ZoomLink)
		assert.Equal(t, "https://zoom.us/j/456", *c.ZoomLink)
		require.NotNil(t, c.InterviewLevel)
		assert.Equal(t, domain.InterviewLevelInternal, *c.InterviewLevel)
		assert.NotNil(t, c.InterviewUpdatedAt)
		assert.Equal(t, domain.InterviewStatusScheduled, c.InterviewStatus())

		assert.True(t, receipt.EmailDelivered)
		assert.Equal(t, "CAND0001", receipt.CandidateID)
		notifier.AssertCalled(t, "NotifyScheduled", c)
	})

	t.Run("Should derive Internal level when client email and zoom link are set", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyScheduled", c).Return(nil)

		req := internalRequest()
		req.InterviewLevel = ""
		_, err := uc.Schedule(context.Background(), "user1", req)
		require.NoError(t, err)
		require.NotNil(t, c.InterviewLevel)
		assert.Equal(t, domain.InterviewLevelInternal, *c.InterviewLevel)
	})

	t.Run("Should derive External level and allow missing zoom link", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyScheduled", c).Return(nil)

		req := internalRequest()
		req.InterviewLevel = ""
		req.ZoomLink = ""
		req.ExternalInterviewDetails = "Client will send a Teams invite"
		_, err := uc.Schedule(context.Background(), "user1", req)
		require.NoError(t, err)
		require.NotNil(t, c.InterviewLevel)
		assert.Equal(t, domain.InterviewLevelExternal, *c.InterviewLevel)
		require.NotNil(t, c.ExternalInterviewDetails)
		assert.Equal(t, "Client will send a Teams invite", *c.ExternalInterviewDetails)
	})

	t.Run("Notification failure degrades to a warning, never a rollback", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyScheduled", c).Return(errors.New("smtp connection refused"))

		receipt, err := uc.Schedule(context.Background(), "user1", internalRequest())
		require.NoError(t, err)
		assert.False(t, receipt.EmailDelivered)
		repo.AssertCalled(t, "Update", mock.Anything, c)
	})
}

func TestUpdateInterview(t *testing.T) {
	t.Run("Should fail when no interview is scheduled", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		_, err := uc.Update(context.Background(), "user1", "CAND0001", internalRequest())
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "No interview scheduled")
	})

	t.Run("Should merge only provided fields and restamp", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := scheduledCandidate()
		originalDateTime := *c.InterviewDateTime
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyUpdated", c).Return(nil)

		newDuration := 90
		receipt, err := uc.Update(context.Background(), "user1", "CAND0001",
			&domain.InterviewDetails{Duration: &newDuration})
		require.NoError(t, err)

		assert.Equal(t, originalDateTime, *c.InterviewDateTime)
		assert.Equal(t, 90, *c.Duration)
		assert.NotNil(t, c.InterviewUpdatedAt)
		assert.True(t, receipt.EmailDelivered)
	})

	t.Run("Re-validates internal policy on the merged record", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := scheduledCandidate()
		c.ClientEmail = ""
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		newDuration := 30
		_, err := uc.Update(context.Background(), "user1", "CAND0001",
			&domain.InterviewDetails{Duration: &newDuration})
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "Client email")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Update notification failure is best-effort", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewInterviewUsecase(repo, notifier)

		c := scheduledCandidate()
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)
		repo.On("Update", mock.Anything, c).Return(nil)
		notifier.On("NotifyUpdated", c).Return(errors.New("mailbox unavailable"))

		newDuration := 30
		receipt, err := uc.Update(context.Background(), "user1", "CAND0001",
			&domain.InterviewDetails{Duration: &newDuration})
		require.NoError(t, err)
		assert.False(t, receipt.EmailDelivered)
	})
}

func TestCancelInterview(t *testing.T) {
	t.Run("Should fail when nothing is scheduled", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		c := validSubmission()
		c.CandidateID = "CAND0001"
		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(c, nil)

		err := uc.Cancel(context.Background(), "CAND0001")
		assertCode(t, err, 400)
		repo.AssertNotCalled(t, "ClearInterview", mock.Anything, mock.Anything)
	})

	t.Run("Should clear interview fields for a scheduled candidate", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		repo.On("GetByCandidateID", mock.Anything, "CAND0001").Return(scheduledCandidate(), nil)
		repo.On("ClearInterview", mock.Anything, "CAND0001").Return(nil)

		err := uc.Cancel(context.Background(), "CAND0001")
		require.NoError(t, err)
		repo.AssertCalled(t, "ClearInterview", mock.Anything, "CAND0001")
	})
}

func TestInterviewListings(t *testing.T) {
	t.Run("User listing includes derived status for every submission", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		scheduled := *scheduledCandidate()
		fresh := *validSubmission()
		fresh.CandidateID = "CAND0002"
		repo.On("ListByUserID", mock.Anything, "user1").
			Return([]domain.Candidate{scheduled, fresh}, nil)

		views, err := uc.ListByUser(context.Background(), "user1")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, domain.InterviewStatusScheduled, views[0].InterviewStatus)
		assert.Equal(t, *scheduled.InterviewDateTime, *views[0].InterviewDateTime)
		assert.Equal(t, scheduled.ZoomLink, views[0].ZoomLink)
		assert.Equal(t, domain.InterviewStatusNotScheduled, views[1].InterviewStatus)
	})

	t.Run("Scheduled listing excludes unscheduled candidates", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockNotifier))

		scheduled := *scheduledCandidate()
		fresh := *validSubmission()
		fresh.CandidateID = "CAND0002"
		repo.On("ListAll", mock.Anything).
			Return([]domain.Candidate{scheduled, fresh}, nil)

		views, err := uc.ListScheduled(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "CAND0001", views[0].CandidateID)
		assert.Equal(t, domain.InterviewStatusScheduled, views[0].InterviewStatus)
	})
}
