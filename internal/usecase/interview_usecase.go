package usecase

import (
	"context"
	"strings"
	"time"

	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/pkg/apperror"
	"candidate-pipeline-backend/pkg/logger"
)

type interviewUsecase struct {
	repo     domain.CandidateRepository
	notifier domain.InterviewNotifier
}

func NewInterviewUsecase(repo domain.CandidateRepository, notifier domain.InterviewNotifier) domain.InterviewUsecase {
	return &interviewUsecase{
		repo:     repo,
		notifier: notifier,
	}
}

// Schedule books an interview on a candidate record. All checks run before
// any mutation, so a failed attempt leaves the record untouched. A mail
// failure after the persist is reported via EmailDelivered, never rolled back.
func (u *interviewUsecase) Schedule(ctx context.Context, userID string, d *domain.InterviewDetails) (*domain.InterviewReceipt, error) {
	log := logger.With("interview")

	if d.CandidateID == "" {
		return nil, apperror.BadRequest("Candidate ID is required")
	}

	c, err := u.loadOwned(ctx, userID, d.CandidateID)
	if err != nil {
		return nil, err
	}

	if c.InterviewScheduled() {
		return nil, apperror.Conflict("An interview is already scheduled for candidate ID: " + d.CandidateID)
	}
	if d.InterviewDateTime == nil {
		return nil, apperror.BadRequest("Interview date and time is required")
	}

	level := d.InterviewLevel
	if level == "" {
		level = deriveInterviewLevel(d.ClientEmail, d.ZoomLink)
	}
	if err := requireInternalFields(level, d.ClientEmail, d.ZoomLink); err != nil {
		return nil, err
	}

	if d.UserEmail != "" {
		c.UserEmail = d.UserEmail
	}
	if d.ClientEmail != "" {
		c.ClientEmail = d.ClientEmail
	}
	if d.ClientName != "" {
		c.ClientName = d.ClientName
	}
	c.InterviewDateTime = d.InterviewDateTime
	c.Duration = d.Duration
	c.InterviewLevel = &level
	if d.ZoomLink != "" {
		c.ZoomLink = &d.ZoomLink
	}
	if d.ExternalInterviewDetails != "" {
		c.ExternalInterviewDetails = &d.ExternalInterviewDetails
	}
	now := time.Now()
	c.InterviewUpdatedAt = &now

	if err := u.repo.Update(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info("interview scheduled", "candidateId", c.CandidateID, "level", level)

	delivered := true
	if err := u.notifier.NotifyScheduled(c); err != nil {
		log.Warn("interview scheduled but notification failed", "candidateId", c.CandidateID, "error", err)
		delivered = false
	}

	return &domain.InterviewReceipt{
		CandidateID:      c.CandidateID,
		UserEmail:        c.UserEmail,
		CandidateEmailID: c.CandidateEmailID,
		ClientEmail:      c.ClientEmail,
		EmailDelivered:   delivered,
	}, nil
}

// Update reschedules an existing interview. Provided fields overwrite, unset
// fields retain their previous value; the internal/external policy is
// re-validated against the merged record.
func (u *interviewUsecase) Update(ctx context.Context, userID, candidateID string, d *domain.InterviewDetails) (*domain.InterviewReceipt, error) {
	log := logger.With("interview")

	if candidateID == "" {
		return nil, apperror.BadRequest("Candidate ID is required")
	}

	c, err := u.loadOwned(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	if !c.InterviewScheduled() {
		return nil, apperror.BadRequest("No interview scheduled for candidate ID: " + candidateID)
	}

	if d.InterviewDateTime != nil {
		c.InterviewDateTime = d.InterviewDateTime
	}
	if d.Duration != nil {
		c.Duration = d.Duration
	}
	if d.ZoomLink != "" {
		c.ZoomLink = &d.ZoomLink
	}
	if d.UserEmail != "" {
		c.UserEmail = d.UserEmail
	}
	if d.ClientEmail != "" {
		c.ClientEmail = d.ClientEmail
	}
	if d.ClientName != "" {
		c.ClientName = d.ClientName
	}
	if d.InterviewLevel != "" {
		level := d.InterviewLevel
		c.InterviewLevel = &level
	}
	if d.ExternalInterviewDetails != "" {
		c.ExternalInterviewDetails = &d.ExternalInterviewDetails
	}

	if c.InterviewLevel == nil {
		level := deriveInterviewLevel(c.ClientEmail, zoomLinkValue(c))
		c.InterviewLevel = &level
	}
	if err := requireInternalFields(*c.InterviewLevel, c.ClientEmail, zoomLinkValue(c)); err != nil {
		return nil, err
	}

	now := time.Now()
	c.InterviewUpdatedAt = &now

	if err := u.repo.Update(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info("interview updated", "candidateId", candidateID)

	delivered := true
	if err := u.notifier.NotifyUpdated(c); err != nil {
		log.Warn("interview updated but notification failed", "candidateId", candidateID, "error", err)
		delivered = false
	}

	return &domain.InterviewReceipt{
		CandidateID:      c.CandidateID,
		UserEmail:        c.UserEmail,
		CandidateEmailID: c.CandidateEmailID,
		ClientEmail:      c.ClientEmail,
		EmailDelivered:   delivered,
	}, nil
}

// Cancel clears a scheduled interview; the candidate record itself survives.
// Lookup is by candidate ID alone, with no ownership check.
func (u *interviewUsecase) Cancel(ctx context.Context, candidateID string) error {
	log := logger.With("interview")

	c, err := u.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return apperror.Internal(err)
	}
	if c == nil || !c.InterviewScheduled() {
		return apperror.BadRequest("No scheduled interview found for candidate ID: " + candidateID)
	}

	if err := u.repo.ClearInterview(ctx, candidateID); err != nil {
		return apperror.Internal(err)
	}

	log.Info("interview cancelled", "candidateId", candidateID)
	return nil
}

// ListByUser returns every submission of the user with its derived status,
// scheduled or not.
func (u *interviewUsecase) ListByUser(ctx context.Context, userID string) ([]domain.InterviewView, error) {
	candidates, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	views := make([]domain.InterviewView, 0, len(candidates))
	for i := range candidates {
		views = append(views, toInterviewView(&candidates[i]))
	}
	return views, nil
}

// ListScheduled returns only candidates with a booked interview.
func (u *interviewUsecase) ListScheduled(ctx context.Context) ([]domain.InterviewView, error) {
	candidates, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	views := make([]domain.InterviewView, 0, len(candidates))
	for i := range candidates {
		if !candidates[i].InterviewScheduled() {
			continue
		}
		views = append(views, toInterviewView(&candidates[i]))
	}
	return views, nil
}

// loadOwned fetches a candidate by ID, then compares the owner explicitly so
// "does not exist" and "not yours" surface as distinct errors.
func (u *interviewUsecase) loadOwned(ctx context.Context, userID, candidateID string) (*domain.Candidate, error) {
	c, err := u.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Candidate not found with id: " + candidateID)
	}
	if c.UserID != userID {
		return nil, apperror.Forbidden("Candidate " + candidateID + " does not belong to user " + userID)
	}
	return c, nil
}

// deriveInterviewLevel classifies an interview as Internal only when both a
// client email and a zoom link are supplied.
func deriveInterviewLevel(clientEmail, zoomLink string) string {
	if clientEmail != "" && zoomLink != "" {
		return domain.InterviewLevelInternal
	}
	return domain.InterviewLevelExternal
}

func requireInternalFields(level, clientEmail, zoomLink string) error {
	if strings.EqualFold(level, domain.InterviewLevelExternal) {
		return nil
	}
	if clientEmail == "" {
		return apperror.BadRequest("Client email is required for Internal interviews")
	}
	if zoomLink == "" {
		return apperror.BadRequest("Zoom link is required for Internal interviews")
	}
	return nil
}

func zoomLinkValue(c *domain.Candidate) string {
	if c.ZoomLink == nil {
		return ""
	}
	return *c.ZoomLink
}

func toInterviewView(c *domain.Candidate) domain.InterviewView {
	return domain.InterviewView{
		JobID:             c.JobID,
		CandidateID:       c.CandidateID,
		FullName:          c.FullName,
		ContactNumber:     c.ContactNumber,
		CandidateEmailID:  c.CandidateEmailID,
		UserEmail:         c.UserEmail,
		UserID:            c.UserID,
		InterviewDateTime: c.InterviewDateTime,
		Duration:          c.Duration,
		ZoomLink:          c.ZoomLink,
		UpdatedAt:         c.InterviewUpdatedAt,
		ClientEmail:       c.ClientEmail,
		ClientName:        c.ClientName,
		InterviewLevel:    c.InterviewLevel,
		InterviewStatus:   c.InterviewStatus(),
	}
}
