package v1

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"candidate-pipeline-backend/internal/delivery/http/response"
	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers candidate submission routes
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	r.POST("/candidatesubmissions", handler.Submit)
	r.PUT("/candidatesubmissions/:candidateId", handler.Resubmit)
	r.GET("/submissions/allsubmittedcandidates", handler.ListAll)
	r.GET("/submissions/:userId", handler.ListByUser)
	r.GET("/download-resume/:candidateId", handler.DownloadResume)
	r.DELETE("/deletecandidate/:candidateId", handler.DeleteCandidate)
}

// Submit godoc
// @Summary      Submit a candidate profile
// @Description  Create a candidate submission with an optional resume upload
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        jobId          formData  string  true   "Job ID"
// @Param        userId         formData  string  true   "Submitting user ID"
// @Param        fullName       formData  string  true   "Candidate full name"
// @Param        candidateEmailId  formData  string  true   "Candidate email"
// @Param        contactNumber  formData  string  true   "10-digit contact number"
// @Param        resumeFile     formData  file    false  "Resume (pdf, doc, docx)"
// @Success      200  {object}  response.Response{data=domain.SubmissionReceipt}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Router       /candidate/candidatesubmissions [post]
func (h *CandidateHandler) Submit(c *gin.Context) {
	candidate := candidateFromForm(c)

	resume, err := resumeFromForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	receipt, err := h.candidateUC.Submit(c, candidate, resume)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile submitted successfully", receipt)
}

// Resubmit godoc
// @Summary      Resubmit a candidate profile
// @Description  Partial update of an existing submission; a new resume file is mandatory
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate ID"
// @Param        resumeFile   formData  file    true  "Replacement resume (pdf, doc, docx)"
// @Success      200  {object}  response.Response{data=domain.SubmissionReceipt}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidate/candidatesubmissions/{candidateId} [put]
func (h *CandidateHandler) Resubmit(c *gin.Context) {
	candidateID := c.Param("candidateId")
	updates := candidateFromForm(c)

	resume, err := resumeFromForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	receipt, err := h.candidateUC.Resubmit(c, candidateID, updates, resume)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate successfully updated", receipt)
}

// ListAll godoc
// @Summary      List all candidate submissions
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SubmissionView}
// @Failure      404  {object}  response.Response
// @Router       /candidate/submissions/allsubmittedcandidates [get]
func (h *CandidateHandler) ListAll(c *gin.Context) {
	submissions, err := h.candidateUC.ListAll(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate submissions retrieved", submissions)
}

// ListByUser godoc
// @Summary      List submissions by owner
// @Tags         candidates
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.SubmissionView}
// @Failure      404  {object}  response.Response
// @Router       /candidate/submissions/{userId} [get]
func (h *CandidateHandler) ListByUser(c *gin.Context) {
	submissions, err := h.candidateUC.ListByUser(c, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate submissions retrieved", submissions)
}

// DownloadResume godoc
// @Summary      Download a candidate's resume
// @Tags         candidates
// @Produce      application/pdf
// @Param        candidateId  path  string  true  "Candidate ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /candidate/download-resume/{candidateId} [get]
func (h *CandidateHandler) DownloadResume(c *gin.Context) {
	file, err := h.candidateUC.DownloadResume(c, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// DeleteCandidate godoc
// @Summary      Delete a candidate record
// @Tags         candidates
// @Produce      json
// @Param        candidateId  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.DeletionReceipt}
// @Failure      404  {object}  response.Response
// @Router       /candidate/deletecandidate/{candidateId} [delete]
func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	receipt, err := h.candidateUC.Delete(c, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate deleted successfully", receipt)
}

// candidateFromForm maps the multipart form onto a candidate. Absent fields
// stay zero so resubmission keeps partial-update semantics.
func candidateFromForm(c *gin.Context) *domain.Candidate {
	candidate := &domain.Candidate{
		JobID:               c.PostForm("jobId"),
		UserID:              c.PostForm("userId"),
		FullName:            c.PostForm("fullName"),
		CandidateEmailID:    c.PostForm("candidateEmailId"),
		ContactNumber:       c.PostForm("contactNumber"),
		Qualification:       c.PostForm("qualification"),
		CurrentCTC:          c.PostForm("currentCTC"),
		ExpectedCTC:         c.PostForm("expectedCTC"),
		NoticePeriod:        c.PostForm("noticePeriod"),
		CurrentLocation:     c.PostForm("currentLocation"),
		PreferredLocation:   c.PostForm("preferredLocation"),
		CommunicationSkills: c.PostForm("communicationSkills"),
		OverallFeedback:     c.PostForm("overallFeedback"),
		CurrentOrganization: c.PostForm("currentOrganization"),
		UserEmail:           c.PostForm("userEmail"),
		ClientEmail:         c.PostForm("clientEmail"),
		ClientName:          c.PostForm("clientName"),
	}

	candidate.TotalExperience = formFloat(c, "totalExperience")
	candidate.RelevantExperience = formFloat(c, "relevantExperience")
	candidate.RequiredTechnologiesRating = formFloat(c, "requiredTechnologiesRating")

	if raw := c.PostForm("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				candidate.Skills = append(candidate.Skills, trimmed)
			}
		}
	}

	return candidate
}

func formFloat(c *gin.Context, field string) float64 {
	v, _ := strconv.ParseFloat(c.PostForm(field), 64)
	return v
}

// resumeFromForm reads the optional resumeFile part. A missing part returns
// (nil, nil); the usecases decide whether the file is mandatory.
func resumeFromForm(c *gin.Context) (*domain.ResumeUpload, error) {
	header, err := c.FormFile("resumeFile")
	if err != nil {
		if err == multipart.ErrMessageTooLarge {
			return nil, apperror.PayloadTooLarge("Resume file exceeds the maximum allowed size")
		}
		return nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ResumeUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Data:     data,
	}, nil
}
