package postgres

import (
	"context"
	"errors"
	"fmt"

	"candidate-pipeline-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

// candidateColumns is every column except the resume blob, which only the
// download path loads.
const candidateColumns = `
	candidate_id, job_id, user_id, full_name, candidate_email_id, contact_number,
	COALESCE(qualification, ''), total_experience, relevant_experience,
	COALESCE(current_ctc, ''), COALESCE(expected_ctc, ''), COALESCE(notice_period, ''),
	COALESCE(current_location, ''), COALESCE(preferred_location, ''), skills,
	COALESCE(communication_skills, ''), required_technologies_rating,
	COALESCE(overall_feedback, ''), COALESCE(current_organization, ''),
	COALESCE(user_email, ''), COALESCE(client_email, ''), COALESCE(client_name, ''),
	profile_received_date, COALESCE(resume_file_path, ''),
	interview_date_time, duration, zoom_link, interview_level,
	external_interview_details, interview_updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var skills []string
	err := row.Scan(
		&c.CandidateID, &c.JobID, &c.UserID, &c.FullName, &c.CandidateEmailID, &c.ContactNumber,
		&c.Qualification, &c.TotalExperience, &c.RelevantExperience,
		&c.CurrentCTC, &c.ExpectedCTC, &c.NoticePeriod,
		&c.CurrentLocation, &c.PreferredLocation, pq.Array(&skills),
		&c.CommunicationSkills, &c.RequiredTechnologiesRating,
		&c.OverallFeedback, &c.CurrentOrganization,
		&c.UserEmail, &c.ClientEmail, &c.ClientName,
		&c.ProfileReceivedDate, &c.ResumeFilePath,
		&c.InterviewDateTime, &c.Duration, &c.ZoomLink, &c.InterviewLevel,
		&c.ExternalInterviewDetails, &c.InterviewUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Skills = skills
	return &c, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			candidate_id, job_id, user_id, full_name, candidate_email_id, contact_number,
			qualification, total_experience, relevant_experience, current_ctc, expected_ctc,
			notice_period, current_location, preferred_location, skills, communication_skills,
			required_technologies_rating, overall_feedback, current_organization,
			user_email, client_email, client_name, profile_received_date,
			resume, resume_file_path
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25
		)`

	_, err := r.db.Exec(ctx, query,
		c.CandidateID, c.JobID, c.UserID, c.FullName, c.CandidateEmailID, c.ContactNumber,
		c.Qualification, c.TotalExperience, c.RelevantExperience, c.CurrentCTC, c.ExpectedCTC,
		c.NoticePeriod, c.CurrentLocation, c.PreferredLocation, pq.Array(c.Skills), c.CommunicationSkills,
		c.RequiredTechnologiesRating, c.OverallFeedback, c.CurrentOrganization,
		c.UserEmail, c.ClientEmail, c.ClientName, c.ProfileReceivedDate,
		c.Resume, c.ResumeFilePath,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "candidates_pkey" {
			return domain.ErrCandidateIDTaken
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByCandidateID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE candidate_id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) GetResume(ctx context.Context, candidateID string) ([]byte, string, error) {
	query := `SELECT resume, COALESCE(resume_file_path, '') FROM candidates WHERE candidate_id = $1`
	var blob []byte
	var path string
	err := r.db.QueryRow(ctx, query, candidateID).Scan(&blob, &path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return blob, path, nil
}

func (r *candidateRepository) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY profile_received_date DESC, candidate_id`
	return r.list(ctx, query)
}

func (r *candidateRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1 ORDER BY profile_received_date DESC, candidate_id`
	return r.list(ctx, query, userID)
}

func (r *candidateRepository) list(ctx context.Context, query string, args ...any) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates SET
			job_id = $1, user_id = $2, full_name = $3, candidate_email_id = $4,
			contact_number = $5, qualification = $6, total_experience = $7,
			relevant_experience = $8, current_ctc = $9, expected_ctc = $10,
			notice_period = $11, current_location = $12, preferred_location = $13,
			skills = $14, communication_skills = $15, required_technologies_rating = $16,
			overall_feedback = $17, current_organization = $18, user_email = $19,
			client_email = $20, client_name = $21, resume = COALESCE($22, resume),
			resume_file_path = $23, interview_date_time = $24, duration = $25,
			zoom_link = $26, interview_level = $27, external_interview_details = $28,
			interview_updated_at = $29
		WHERE candidate_id = $30`

	var resumePath any
	if c.ResumeFilePath != "" {
		resumePath = c.ResumeFilePath
	}

	tag, err := r.db.Exec(ctx, query,
		c.JobID, c.UserID, c.FullName, c.CandidateEmailID,
		c.ContactNumber, c.Qualification, c.TotalExperience,
		c.RelevantExperience, c.CurrentCTC, c.ExpectedCTC,
		c.NoticePeriod, c.CurrentLocation, c.PreferredLocation,
		pq.Array(c.Skills), c.CommunicationSkills, c.RequiredTechnologiesRating,
		c.OverallFeedback, c.CurrentOrganization, c.UserEmail,
		c.ClientEmail, c.ClientName, c.Resume,
		resumePath, c.InterviewDateTime, c.Duration,
		c.ZoomLink, c.InterviewLevel, c.ExternalInterviewDetails,
		c.InterviewUpdatedAt,
		c.CandidateID,
	)
	if err != nil {
		return fmt.Errorf("update candidate %s: %w", c.CandidateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update candidate %s: no rows affected", c.CandidateID)
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, candidateID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("delete candidate %s: %w", candidateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete candidate %s: no rows affected", candidateID)
	}
	return nil
}

// ClearInterview nulls every interview column and the client fields in one
// statement so a concurrent reader never observes a half-cleared interview.
func (r *candidateRepository) ClearInterview(ctx context.Context, candidateID string) error {
	query := `
		UPDATE candidates SET
			interview_date_time = NULL, duration = NULL, zoom_link = NULL,
			interview_level = NULL, external_interview_details = NULL,
			interview_updated_at = NULL, client_name = NULL, client_email = NULL
		WHERE candidate_id = $1`
	tag, err := r.db.Exec(ctx, query, candidateID)
	if err != nil {
		return fmt.Errorf("clear interview for %s: %w", candidateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clear interview for %s: no rows affected", candidateID)
	}
	return nil
}

func (r *candidateRepository) FindByEmailJobClient(ctx context.Context, email, jobID, clientName string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE candidate_email_id = $1 AND job_id = $2 AND COALESCE(client_name, '') = $3`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, email, jobID, clientName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) FindByContactJobClient(ctx context.Context, contactNumber, jobID, clientName string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE contact_number = $1 AND job_id = $2 AND COALESCE(client_name, '') = $3`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, contactNumber, jobID, clientName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
