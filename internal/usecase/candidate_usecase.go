package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"time"

	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/pkg/apperror"
	"candidate-pipeline-backend/pkg/filestore"
	"candidate-pipeline-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// maxIDAttempts bounds candidate-ID regeneration when the 4-digit space
// collides with existing rows.
const maxIDAttempts = 5

type candidateUsecase struct {
	repo           domain.CandidateRepository
	store          domain.ResumeStore
	validate       *validator.Validate
	maxResumeBytes int64
}

func NewCandidateUsecase(repo domain.CandidateRepository, store domain.ResumeStore, validate *validator.Validate, maxResumeSizeMB int) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:           repo,
		store:          store,
		validate:       validate,
		maxResumeBytes: int64(maxResumeSizeMB) << 20,
	}
}

func newCandidateID() string {
	return fmt.Sprintf("CAND%04d", rand.Intn(10000))
}

func (u *candidateUsecase) Submit(ctx context.Context, c *domain.Candidate, resume *domain.ResumeUpload) (*domain.SubmissionReceipt, error) {
	log := logger.With("candidate")

	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.BadRequest(validationMessage(err))
	}

	if err := u.checkForDuplicates(ctx, c); err != nil {
		return nil, err
	}

	if resume != nil {
		if err := u.checkResume(resume); err != nil {
			return nil, err
		}
	}

	if c.ProfileReceivedDate.IsZero() {
		c.ProfileReceivedDate = time.Now()
	}

	// First generated ID also names the filesystem copy of the resume.
	c.CandidateID = newCandidateID()

	if resume != nil {
		path, err := u.store.Save(c.CandidateID, resume.Filename, resume.Data)
		if err != nil {
			log.Error("failed to store resume", "candidateId", c.CandidateID, "error", err)
			return nil, apperror.Internal(err)
		}
		c.Resume = resume.Data
		c.ResumeFilePath = path
	}

	// The store enforces candidate_id uniqueness; regenerate and retry on
	// the rare 4-digit collision.
	for attempt := 0; ; attempt++ {
		err := u.repo.Create(ctx, c)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrCandidateIDTaken) && attempt < maxIDAttempts-1 {
			c.CandidateID = newCandidateID()
			continue
		}
		return nil, apperror.Internal(err)
	}

	log.Info("candidate submitted", "candidateId", c.CandidateID, "jobId", c.JobID, "userId", c.UserID)

	return &domain.SubmissionReceipt{
		CandidateID: c.CandidateID,
		UserID:      c.UserID,
		JobID:       c.JobID,
	}, nil
}

func (u *candidateUsecase) Resubmit(ctx context.Context, candidateID string, updates *domain.Candidate, resume *domain.ResumeUpload) (*domain.SubmissionReceipt, error) {
	log := logger.With("candidate")

	existing, err := u.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Candidate not found with id: " + candidateID)
	}

	if resume == nil || len(resume.Data) == 0 {
		return nil, apperror.BadRequest("Resume file is required for resubmission")
	}
	if err := u.checkResume(resume); err != nil {
		return nil, err
	}

	mergeCandidateFields(existing, updates)

	path, err := u.store.Save(existing.CandidateID, resume.Filename, resume.Data)
	if err != nil {
		log.Error("failed to store resume", "candidateId", candidateID, "error", err)
		return nil, apperror.Internal(err)
	}
	existing.Resume = resume.Data
	existing.ResumeFilePath = path

	if err := u.repo.Update(ctx, existing); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info("candidate resubmitted", "candidateId", candidateID)

	return &domain.SubmissionReceipt{
		CandidateID: existing.CandidateID,
		UserID:      existing.UserID,
		JobID:       existing.JobID,
	}, nil
}

func (u *candidateUsecase) ListAll(ctx context.Context) ([]domain.SubmissionView, error) {
	candidates, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(candidates) == 0 {
		return nil, apperror.NotFound("No candidate submissions found")
	}
	return toSubmissionViews(candidates), nil
}

func (u *candidateUsecase) ListByUser(ctx context.Context, userID string) ([]domain.SubmissionView, error) {
	candidates, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(candidates) == 0 {
		return nil, apperror.NotFound("No submissions found for userId: " + userID)
	}
	return toSubmissionViews(candidates), nil
}

func (u *candidateUsecase) DownloadResume(ctx context.Context, candidateID string) (*domain.ResumeFile, error) {
	c, err := u.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Candidate not found with id: " + candidateID)
	}

	blob, path, err := u.repo.GetResume(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(blob) == 0 {
		return nil, apperror.NotFound("No resume on file for candidate " + candidateID)
	}

	filename := filepath.Base(path)
	if filename == "." || filename == "/" || filename == "" {
		filename = candidateID + ".pdf"
	}

	contentType := http.DetectContentType(blob)
	if contentType == "application/octet-stream" {
		contentType = "application/pdf"
	}

	return &domain.ResumeFile{
		Filename:    filename,
		ContentType: contentType,
		Data:        blob,
	}, nil
}

func (u *candidateUsecase) Delete(ctx context.Context, candidateID string) (*domain.DeletionReceipt, error) {
	log := logger.With("candidate")

	c, err := u.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Candidate not found with id: " + candidateID)
	}

	if err := u.repo.Delete(ctx, candidateID); err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info("candidate deleted", "candidateId", candidateID)

	return &domain.DeletionReceipt{
		CandidateID: c.CandidateID,
		FullName:    c.FullName,
	}, nil
}

func (u *candidateUsecase) checkForDuplicates(ctx context.Context, c *domain.Candidate) error {
	byEmail, err := u.repo.FindByEmailJobClient(ctx, c.CandidateEmailID, c.JobID, c.ClientName)
	if err != nil {
		return apperror.Internal(err)
	}
	if byEmail != nil {
		return apperror.Conflict(fmt.Sprintf(
			"Candidate with email ID %s has already been submitted for job %s by client %s",
			byEmail.CandidateEmailID, byEmail.JobID, byEmail.ClientName))
	}

	byContact, err := u.repo.FindByContactJobClient(ctx, c.ContactNumber, c.JobID, c.ClientName)
	if err != nil {
		return apperror.Internal(err)
	}
	if byContact != nil {
		return apperror.Conflict(fmt.Sprintf(
			"Candidate with contact number %s has already been submitted for job %s by client %s",
			byContact.ContactNumber, byContact.JobID, byContact.ClientName))
	}
	return nil
}

// checkResume enforces the size limit before the type check so oversized
// uploads fail with 413 regardless of extension.
func (u *candidateUsecase) checkResume(resume *domain.ResumeUpload) error {
	size := resume.Size
	if size == 0 {
		size = int64(len(resume.Data))
	}
	if size > u.maxResumeBytes {
		return apperror.PayloadTooLarge(fmt.Sprintf(
			"Resume file exceeds the maximum allowed size of %d MB", u.maxResumeBytes>>20))
	}
	if !filestore.ValidResumeType(resume.Filename, resume.Data) {
		return apperror.BadRequest("Invalid file type. Only PDF, DOC and DOCX files are allowed.")
	}
	return nil
}

// mergeCandidateFields applies partial-update semantics: each non-zero field
// of updates replaces the stored value, absent fields are left untouched.
func mergeCandidateFields(existing, updates *domain.Candidate) {
	if updates == nil {
		return
	}
	if updates.JobID != "" {
		existing.JobID = updates.JobID
	}
	if updates.UserID != "" {
		existing.UserID = updates.UserID
	}
	if updates.FullName != "" {
		existing.FullName = updates.FullName
	}
	if updates.CandidateEmailID != "" {
		existing.CandidateEmailID = updates.CandidateEmailID
	}
	if updates.ContactNumber != "" {
		existing.ContactNumber = updates.ContactNumber
	}
	if updates.Qualification != "" {
		existing.Qualification = updates.Qualification
	}
	if updates.TotalExperience != 0 {
		existing.TotalExperience = updates.TotalExperience
	}
	if updates.RelevantExperience != 0 {
		existing.RelevantExperience = updates.RelevantExperience
	}
	if updates.CurrentCTC != "" {
		existing.CurrentCTC = updates.CurrentCTC
	}
	if updates.ExpectedCTC != "" {
		existing.ExpectedCTC = updates.ExpectedCTC
	}
	if updates.NoticePeriod != "" {
		existing.NoticePeriod = updates.NoticePeriod
	}
	if updates.CurrentLocation != "" {
		existing.CurrentLocation = updates.CurrentLocation
	}
	if updates.PreferredLocation != "" {
		existing.PreferredLocation = updates.PreferredLocation
	}
	if len(updates.Skills) > 0 {
		existing.Skills = updates.Skills
	}
	if updates.CommunicationSkills != "" {
		existing.CommunicationSkills = updates.CommunicationSkills
	}
	if updates.RequiredTechnologiesRating != 0 {
		existing.RequiredTechnologiesRating = updates.RequiredTechnologiesRating
	}
	if updates.OverallFeedback != "" {
		existing.OverallFeedback = updates.OverallFeedback
	}
	if updates.CurrentOrganization != "" {
		existing.CurrentOrganization = updates.CurrentOrganization
	}
}

func toSubmissionViews(candidates []domain.Candidate) []domain.SubmissionView {
	views := make([]domain.SubmissionView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, domain.SubmissionView{
			Candidate:       c,
			InterviewStatus: c.InterviewStatus(),
		})
	}
	return views
}

// validationMessage flattens a validator error into a single user-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch {
	case fe.Field() == "FullName":
		return "Full Name is required and cannot be empty"
	case fe.Field() == "CandidateEmailID":
		return "Invalid email format"
	case fe.Field() == "ContactNumber":
		return "Contact number must be 10 digits"
	case fe.Field() == "RequiredTechnologiesRating":
		return "Required technologies rating must be between 0 and 5"
	default:
		return fmt.Sprintf("Invalid value for field %s", fe.Field())
	}
}
