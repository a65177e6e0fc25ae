package domain_test

import (
	"testing"
	"time"

	"candidate-pipeline-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestInterviewStatus(t *testing.T) {
	t.Run("Status follows the interview date time", func(t *testing.T) {
		c := &domain.Candidate{}
		assert.False(t, c.InterviewScheduled())
		assert.Equal(t, domain.InterviewStatusNotScheduled, c.InterviewStatus())

		when := time.Now().Add(48 * time.Hour)
		c.InterviewDateTime = &when
		assert.True(t, c.InterviewScheduled())
		assert.Equal(t, domain.InterviewStatusScheduled, c.InterviewStatus())
	})

	t.Run("Other interview fields alone do not make a candidate scheduled", func(t *testing.T) {
		duration := 45
		zoom := "https://zoom.us/j/123"
		c := &domain.Candidate{Duration: &duration, ZoomLink: &zoom}
		assert.Equal(t, domain.InterviewStatusNotScheduled, c.InterviewStatus())
	})
}

func TestClearInterview(t *testing.T) {
	when := time.Now()
	duration := 45
	zoom := "https://zoom.us/j/123"
	level := domain.InterviewLevelInternal
	details := "client runs the panel"

	c := &domain.Candidate{
		CandidateID:              "CAND0001",
		FullName:                 "Asha Verma",
		ClientName:               "Acme Corp",
		ClientEmail:              "client@acme.example.com",
		InterviewDateTime:        &when,
		Duration:                 &duration,
		ZoomLink:                 &zoom,
		InterviewLevel:           &level,
		ExternalInterviewDetails: &details,
		InterviewUpdatedAt:       &when,
	}

	c.ClearInterview()

	assert.Nil(t, c.InterviewDateTime)
	assert.Nil(t, c.Duration)
	assert.Nil(t, c.ZoomLink)
	assert.Nil(t, c.InterviewLevel)
	assert.Nil(t, c.ExternalInterviewDetails)
	assert.Nil(t, c.InterviewUpdatedAt)
	assert.Empty(t, c.ClientName)
	assert.Empty(t, c.ClientEmail)
	assert.Equal(t, domain.InterviewStatusNotScheduled, c.InterviewStatus())

	assert.Equal(t, "CAND0001", c.CandidateID)
	assert.Equal(t, "Asha Verma", c.FullName)
}
