// internal/handlers/job/job_handler.go
package job

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/job"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	jobSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JobHandler struct {
	jobService *jobSvc.Service
	logger     *zap.Logger
}

func NewJobHandler(jobService *jobSvc.Service, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// Create opens a job from an approved quote (admin only)
func (h *JobHandler) Create(c *gin.Context) {
	var req job.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.jobService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("job creation failed",
			zap.String("quote_id", req.QuoteID),
			zap.Error(err),
		)
		response.FromError(c, "failed to create job", err)
		return
	}

	response.Success(c, http.StatusCreated, "job created", created)
}

// List returns every job (admin only)
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobService.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list jobs", err)
		return
	}

	response.Success(c, http.StatusOK, "jobs", jobs)
}

// Get returns one job (admin only)
func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.jobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to get job", err)
		return
	}

	response.Success(c, http.StatusOK, "job", j)
}

// Update applies a partial update (admin only)
func (h *JobHandler) Update(c *gin.Context) {
	var req job.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.jobService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update job", err)
		return
	}

	response.Success(c, http.StatusOK, "job updated", updated)
}

// Delete removes a job (admin only)
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete job", err)
		return
	}

	response.Success(c, http.StatusOK, "job deleted", nil)
}
