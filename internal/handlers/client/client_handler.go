// internal/handlers/client/client_handler.go

// Package client serves the signed-in customer portal: profile, own
// quotes and own jobs. Admin-only fields never appear on these routes.
package client

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/middleware"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	customerSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/customer"
	jobSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/job"
	quoteSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/quote"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClientHandler struct {
	customerService *customerSvc.Service
	quoteService    *quoteSvc.Service
	jobService      *jobSvc.Service
	logger          *zap.Logger
}

func NewClientHandler(
	customerService *customerSvc.Service,
	quoteService *quoteSvc.Service,
	jobService *jobSvc.Service,
	logger *zap.Logger,
) *ClientHandler {
	return &ClientHandler{
		customerService: customerService,
		quoteService:    quoteService,
		jobService:      jobService,
		logger:          logger,
	}
}

// Profile returns the caller's customer record
func (h *ClientHandler) Profile(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	profile, err := h.customerService.Profile(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, "failed to load profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile", profile)
}

// UpdateProfile applies a partial update to the caller's record
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req customer.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.customerService.UpdateProfile(c.Request.Context(), sess, &req)
	if err != nil {
		response.FromError(c, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", updated)
}

// Quotes returns the caller's quotes, merged across both lookup keys
func (h *ClientHandler) Quotes(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	quotes, err := h.quoteService.ListForCustomer(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, "failed to list quotes", err)
		return
	}

	response.Success(c, http.StatusOK, "quotes", quotes)
}

// Quote returns one of the caller's quotes
func (h *ClientHandler) Quote(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	q, err := h.quoteService.GetForCustomer(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to get quote", err)
		return
	}

	response.Success(c, http.StatusOK, "quote", q)
}

// Jobs returns the caller's jobs
func (h *ClientHandler) Jobs(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	jobs, err := h.jobService.ListForCustomer(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, "failed to list jobs", err)
		return
	}

	response.Success(c, http.StatusOK, "jobs", jobs)
}
