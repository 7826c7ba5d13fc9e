package v1

import (
	"net/http"
	"strconv"
	"time"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - listing and details only expose active jobs
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - employer mutations and the employer dashboard list
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
		protectedJobs.GET("/employer/my-jobs", handler.ListByEmployer)
	}
}

type CreateJobRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description" binding:"required"`
	Requirements     string     `json:"requirements"`
	Responsibilities string     `json:"responsibilities"`
	Location         string     `json:"location" binding:"required"`
	Salary           string     `json:"salary"`
	JobType          string     `json:"jobType" binding:"required,jobtype"`
	ExperienceLevel  string     `json:"experienceLevel" binding:"required"`
	Industry         string     `json:"industry" binding:"required"`
	Skills           []string   `json:"skills"`
	IsFeatured       bool       `json:"isFeatured"`
	IsActive         *bool      `json:"isActive"`
	ClosingDate      *time.Time `json:"closingDate"`
}

type UpdateJobRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Requirements     *string    `json:"requirements"`
	Responsibilities *string    `json:"responsibilities"`
	Location         *string    `json:"location"`
	Salary           *string    `json:"salary"`
	JobType          *string    `json:"jobType"`
	ExperienceLevel  *string    `json:"experienceLevel"`
	Industry         *string    `json:"industry"`
	Skills           []string   `json:"skills"`
	IsFeatured       *bool      `json:"isFeatured"`
	IsActive         *bool      `json:"isActive"`
	ClosingDate      *time.Time `json:"closingDate"`
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a new job posting (Employer only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleEmployer && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only employers can create jobs"))
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	employerID := c.GetString(string(domain.KeyUserID))

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	var salary *string
	if req.Salary != "" {
		salary = &req.Salary
	}

	job := &domain.Job{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Location:         req.Location,
		Salary:           salary,
		JobType:          req.JobType,
		ExperienceLevel:  req.ExperienceLevel,
		Industry:         req.Industry,
		Skills:           req.Skills,
		IsFeatured:       req.IsFeatured,
		IsActive:         isActive,
		ClosingDate:      req.ClosingDate,
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), employerID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", gin.H{"job": job})
}

// List godoc
// @Summary      List active jobs
// @Description  List active jobs with filter predicates and offset pagination
// @Tags         jobs
// @Produce      json
// @Param        search           query  string  false  "Substring match over title, description, industry"
// @Param        jobType          query  string  false  "Exact job type"
// @Param        location         query  string  false  "Substring match on location"
// @Param        industry         query  string  false  "Substring match on industry"
// @Param        experienceLevel  query  string  false  "Exact experience level"
// @Param        featured         query  bool    false  "Only featured jobs"
// @Param        page             query  int     false  "Page number"
// @Param        limit            query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := &domain.JobFilter{
		Search:          c.Query("search"),
		JobType:         c.Query("jobType"),
		Location:        c.Query("location"),
		Industry:        c.Query("industry"),
		ExperienceLevel: c.Query("experienceLevel"),
		Page:            page,
		Limit:           limit,
	}
	if c.Query("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	jobs, pagination, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Description  Get a job with its employer profile and application count
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", gin.H{"job": job})
}

// Update godoc
// @Summary      Update a job
// @Description  Partially update an owned job posting; employer and posted date are immutable
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Job fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	actorID := c.GetString(string(domain.KeyUserID))
	update := &domain.JobUpdate{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Location:         req.Location,
		Salary:           req.Salary,
		JobType:          req.JobType,
		ExperienceLevel:  req.ExperienceLevel,
		Industry:         req.Industry,
		Skills:           req.Skills,
		IsFeatured:       req.IsFeatured,
		IsActive:         req.IsActive,
		ClosingDate:      req.ClosingDate,
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), actorID, c.Param("id"), update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", gin.H{"job": job})
}

// Delete godoc
// @Summary      Delete a job
// @Description  Delete an owned job posting and all its applications
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	actorID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.DeleteJob(c.Request.Context(), actorID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// ListByEmployer godoc
// @Summary      List employer's own jobs
// @Description  All jobs owned by the caller, active or not, with application counts
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/employer/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleEmployer && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only employers can access their job list"))
		return
	}

	employerID := c.GetString(string(domain.KeyUserID))
	if employerID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	jobs, err := h.jobUC.ListJobsByEmployer(c.Request.Context(), employerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer job list", gin.H{"jobs": jobs})
}
