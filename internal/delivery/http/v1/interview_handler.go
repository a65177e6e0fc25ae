package v1

import (
	"net/http"

	"candidate-pipeline-backend/internal/delivery/http/response"
	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview scheduling routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	r.POST("/interview-schedule/:userId", handler.Schedule)
	r.PUT("/interview-update/:userId/:candidateId", handler.Update)
	r.GET("/interviews/:userId", handler.ListByUser)
	r.GET("/allscheduledinterviews", handler.ListScheduled)
	r.DELETE("/deleteinterview/:candidateId", handler.Cancel)
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Book an interview on a candidate owned by the user
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        userId  path  string                   true  "Owning user ID"
// @Param        body    body  domain.InterviewDetails  true  "Interview details"
// @Success      200  {object}  response.Response{data=domain.InterviewReceipt}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidate/interview-schedule/{userId} [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var details domain.InterviewDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	receipt, err := h.interviewUC.Schedule(c, c.Param("userId"), &details)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, scheduleMessage(receipt), receipt)
}

// Update godoc
// @Summary      Update a scheduled interview
// @Description  Reschedule or amend an existing interview; unset fields keep their values
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        userId       path  string                   true  "Owning user ID"
// @Param        candidateId  path  string                   true  "Candidate ID"
// @Param        body         body  domain.InterviewDetails  true  "Fields to update"
// @Success      200  {object}  response.Response{data=domain.InterviewReceipt}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidate/interview-update/{userId}/{candidateId} [put]
func (h *InterviewHandler) Update(c *gin.Context) {
	var details domain.InterviewDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	receipt, err := h.interviewUC.Update(c, c.Param("userId"), c.Param("candidateId"), &details)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, updateMessage(receipt), receipt)
}

// ListByUser godoc
// @Summary      List interviews for a user's candidates
// @Tags         interviews
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.InterviewView}
// @Router       /candidate/interviews/{userId} [get]
func (h *InterviewHandler) ListByUser(c *gin.Context) {
	views, err := h.interviewUC.ListByUser(c, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", views)
}

// ListScheduled godoc
// @Summary      List all scheduled interviews
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InterviewView}
// @Router       /candidate/allscheduledinterviews [get]
func (h *InterviewHandler) ListScheduled(c *gin.Context) {
	views, err := h.interviewUC.ListScheduled(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Scheduled interviews retrieved", views)
}

// Cancel godoc
// @Summary      Cancel a scheduled interview
// @Description  Clears interview fields; the candidate record is retained
// @Tags         interviews
// @Produce      json
// @Param        candidateId  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /candidate/deleteinterview/{candidateId} [delete]
func (h *InterviewHandler) Cancel(c *gin.Context) {
	if err := h.interviewUC.Cancel(c, c.Param("candidateId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Scheduled interview removed successfully", nil)
}

func scheduleMessage(r *domain.InterviewReceipt) string {
	if r.EmailDelivered {
		return "Interview scheduled successfully and email notifications sent"
	}
	return "Interview scheduled successfully, but email notifications could not be delivered"
}

func updateMessage(r *domain.InterviewReceipt) string {
	if r.EmailDelivered {
		return "Interview updated successfully and notifications sent"
	}
	return "Interview updated successfully, but email notifications could not be delivered"
}
