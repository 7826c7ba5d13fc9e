package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := protected.Group("/applications")
	{
		apps.POST("", handler.Apply)
		apps.GET("/candidate/my-applications", handler.MyApplications)
		apps.GET("/job/:jobId", handler.ListByJob)
		apps.PUT("/:id/status", handler.UpdateStatus)
		apps.DELETE("/:id", handler.Withdraw)
	}
}

type ApplyRequest struct {
	JobID       string `json:"jobId" binding:"required"`
	CoverLetter string `json:"coverLetter"`
	ResumeURL   string `json:"resumeUrl" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application (Candidate only). A candidate can apply to a job at most once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only candidates can apply to jobs"))
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidateID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.Apply(c.Request.Context(), candidateID, &domain.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", gin.H{"application": app})
}

// MyApplications godoc
// @Summary      List own applications
// @Description  All applications of the authenticated candidate with job summaries
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /applications/candidate/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only candidates can view their applications"))
		return
	}

	candidateID := c.GetString(string(domain.KeyUserID))
	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "My applications", gin.H{"applications": apps})
}

// ListByJob godoc
// @Summary      List applications for a job
// @Description  All applications for a job with candidate summaries (owning employer only)
// @Tags         applications
// @Produce      json
// @Param        jobId  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleEmployer && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only employers can view job applications"))
		return
	}

	actorID := c.GetString(string(domain.KeyUserID))
	apps, err := h.applicationUC.ListByJob(c.Request.Context(), actorID, c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job applications", gin.H{"applications": apps})
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Set an application's status (owning employer only); notifies the candidate
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Application ID"
// @Param        status  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleEmployer && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only employers can update application status"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	actorID := c.GetString(string(domain.KeyUserID))
	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), actorID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", gin.H{"application": app})
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Delete an own application (candidate only), allowed from any status
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only candidates can withdraw applications"))
		return
	}

	candidateID := c.GetString(string(domain.KeyUserID))
	if err := h.applicationUC.Withdraw(c.Request.Context(), candidateID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn successfully", nil)
}
