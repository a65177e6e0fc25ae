package domain

import (
	"context"
	"errors"
	"time"
)

// Interview levels. Internal interviews are run over the company's own
// conference link and require a client email; external interviews are arranged
// by the client and described in free text.
const (
	InterviewLevelInternal = "Internal"
	InterviewLevelExternal = "External"
)

// Derived interview statuses. The status is never persisted; it is computed
// from InterviewDateTime at read time so the two can never drift.
const (
	InterviewStatusScheduled    = "Scheduled"
	InterviewStatusNotScheduled = "Not Scheduled"
)

// ErrCandidateIDTaken is returned by the repository when an insert collides
// with an existing candidate_id. The submission workflow regenerates the ID
// and retries.
var ErrCandidateIDTaken = errors.New("candidate id already taken")

// Candidate is one applicant's submission for one job/client combination.
// Interview fields are pointers: nil means no interview is scheduled.
type Candidate struct {
	CandidateID                string    `json:"candidateId"`
	JobID                      string    `json:"jobId" validate:"required"`
	UserID                     string    `json:"userId" validate:"required"`
	FullName                   string    `json:"fullName" validate:"required,max=100"`
	CandidateEmailID           string    `json:"candidateEmailId" validate:"required,email"`
	ContactNumber              string    `json:"contactNumber" validate:"required,contact_number"`
	Qualification              string    `json:"qualification"`
	TotalExperience            float64   `json:"totalExperience" validate:"gte=0"`
	RelevantExperience         float64   `json:"relevantExperience" validate:"gte=0"`
	CurrentCTC                 string    `json:"currentCTC"`
	ExpectedCTC                string    `json:"expectedCTC"`
	NoticePeriod               string    `json:"noticePeriod"`
	CurrentLocation            string    `json:"currentLocation"`
	PreferredLocation          string    `json:"preferredLocation"`
	Skills                     []string  `json:"skills"`
	CommunicationSkills        string    `json:"communicationSkills"`
	RequiredTechnologiesRating float64   `json:"requiredTechnologiesRating" validate:"gte=0,lte=5"`
	OverallFeedback            string    `json:"overallFeedback"`
	CurrentOrganization        string    `json:"currentOrganization"`
	UserEmail                  string    `json:"userEmail" validate:"omitempty,email"`
	ClientEmail                string    `json:"clientEmail" validate:"omitempty,email"`
	ClientName                 string    `json:"clientName"`
	ProfileReceivedDate        time.Time `json:"profileReceivedDate"`

	// Resume is stored both as a blob and as a filesystem copy.
	Resume         []byte `json:"-"`
	ResumeFilePath string `json:"-"`

	InterviewDateTime        *time.Time `json:"interviewDateTime,omitempty"`
	Duration                 *int       `json:"duration,omitempty"`
	ZoomLink                 *string    `json:"zoomLink,omitempty"`
	InterviewLevel           *string    `json:"interviewLevel,omitempty"`
	ExternalInterviewDetails *string    `json:"externalInterviewDetails,omitempty"`
	InterviewUpdatedAt       *time.Time `json:"interviewUpdatedAt,omitempty"`
}

// InterviewScheduled reports whether an interview is booked. InterviewDateTime
// is the single source of truth.
func (c *Candidate) InterviewScheduled() bool {
	return c.InterviewDateTime != nil
}

// InterviewStatus derives the display status from InterviewDateTime.
func (c *Candidate) InterviewStatus() string {
	if c.InterviewScheduled() {
		return InterviewStatusScheduled
	}
	return InterviewStatusNotScheduled
}

// ClearInterview resets every interview-related field. The candidate record
// itself survives.
func (c *Candidate) ClearInterview() {
	c.InterviewDateTime = nil
	c.Duration = nil
	c.ZoomLink = nil
	c.InterviewLevel = nil
	c.ExternalInterviewDetails = nil
	c.InterviewUpdatedAt = nil
	c.ClientName = ""
	c.ClientEmail = ""
}

// ResumeUpload carries an uploaded resume file through the workflow.
type ResumeUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

// InterviewDetails is the scheduling/update input. Nil or empty fields mean
// "not provided" and, on update, leave the stored value untouched.
type InterviewDetails struct {
	CandidateID              string     `json:"candidateId"`
	InterviewDateTime        *time.Time `json:"interviewDateTime"`
	Duration                 *int       `json:"duration"`
	ZoomLink                 string     `json:"zoomLink"`
	UserEmail                string     `json:"userEmail"`
	ClientEmail              string     `json:"clientEmail"`
	ClientName               string     `json:"clientName"`
	InterviewLevel           string     `json:"interviewLevel"`
	ExternalInterviewDetails string     `json:"externalInterviewDetails"`
}

// SubmissionReceipt identifies a stored submission.
type SubmissionReceipt struct {
	CandidateID string `json:"candidateId"`
	UserID      string `json:"userId"`
	JobID       string `json:"jobId"`
}

// DeletionReceipt echoes the record removed by a full candidate delete.
type DeletionReceipt struct {
	CandidateID string `json:"candidateId"`
	FullName    string `json:"fullName"`
}

// InterviewReceipt is the schedule/update result. EmailDelivered is false when
// the interview was persisted but one or more notifications failed; the
// schedule itself is never rolled back for a mail failure.
type InterviewReceipt struct {
	CandidateID      string `json:"candidateId"`
	UserEmail        string `json:"userEmail"`
	CandidateEmailID string `json:"emailId"`
	ClientEmail      string `json:"clientEmail"`
	EmailDelivered   bool   `json:"emailDelivered"`
}

// InterviewView is the listing shape for scheduled-interview queries.
type InterviewView struct {
	JobID             string     `json:"jobId"`
	CandidateID       string     `json:"candidateId"`
	FullName          string     `json:"fullName"`
	ContactNumber     string     `json:"contactNumber"`
	CandidateEmailID  string     `json:"candidateEmailId"`
	UserEmail         string     `json:"userEmail"`
	UserID            string     `json:"userId"`
	InterviewDateTime *time.Time `json:"interviewDateTime"`
	Duration          *int       `json:"duration"`
	ZoomLink          *string    `json:"zoomLink"`
	UpdatedAt         *time.Time `json:"timestamp"`
	ClientEmail       string     `json:"clientEmail"`
	ClientName        string     `json:"clientName"`
	InterviewLevel    *string    `json:"interviewLevel"`
	InterviewStatus   string     `json:"interviewStatus"`
}

// SubmissionView is the listing shape for candidate-submission queries.
type SubmissionView struct {
	Candidate
	InterviewStatus string `json:"interviewStatus"`
}

// ResumeFile is a downloadable resume.
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CandidateRepository interface {
	// Create inserts a new record. Returns ErrCandidateIDTaken when the
	// generated candidate ID collides with an existing row.
	Create(ctx context.Context, c *Candidate) error
	// GetByCandidateID returns (nil, nil) when no record exists. The resume
	// blob is not loaded; use GetResume for downloads.
	GetByCandidateID(ctx context.Context, candidateID string) (*Candidate, error)
	GetResume(ctx context.Context, candidateID string) ([]byte, string, error)
	ListAll(ctx context.Context) ([]Candidate, error)
	ListByUserID(ctx context.Context, userID string) ([]Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, candidateID string) error
	// ClearInterview nulls the interview columns in a single transaction.
	ClearInterview(ctx context.Context, candidateID string) error
	FindByEmailJobClient(ctx context.Context, email, jobID, clientName string) (*Candidate, error)
	FindByContactJobClient(ctx context.Context, contactNumber, jobID, clientName string) (*Candidate, error)
}

type CandidateUsecase interface {
	Submit(ctx context.Context, c *Candidate, resume *ResumeUpload) (*SubmissionReceipt, error)
	Resubmit(ctx context.Context, candidateID string, updates *Candidate, resume *ResumeUpload) (*SubmissionReceipt, error)
	ListAll(ctx context.Context) ([]SubmissionView, error)
	ListByUser(ctx context.Context, userID string) ([]SubmissionView, error)
	DownloadResume(ctx context.Context, candidateID string) (*ResumeFile, error)
	Delete(ctx context.Context, candidateID string) (*DeletionReceipt, error)
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, userID string, details *InterviewDetails) (*InterviewReceipt, error)
	Update(ctx context.Context, userID, candidateID string, details *InterviewDetails) (*InterviewReceipt, error)
	Cancel(ctx context.Context, candidateID string) error
	ListByUser(ctx context.Context, userID string) ([]InterviewView, error)
	ListScheduled(ctx context.Context) ([]InterviewView, error)
}

// InterviewNotifier sends interview emails. Implementations send to each
// recipient independently and report a joined error for any failures.
type InterviewNotifier interface {
	NotifyScheduled(c *Candidate) error
	NotifyUpdated(c *Candidate) error
}

// ResumeStore persists resume files outside the database and returns the
// stored path.
type ResumeStore interface {
	Save(candidateID, filename string, data []byte) (string, error)
}
