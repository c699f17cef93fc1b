// internal/handlers/quote/quote_handler.go
package quote

import (
	"io"
	"net/http"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/middleware"
	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/attachment"
	quoteSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/quote"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *quoteSvc.Service
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *quoteSvc.Service, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// Submit handles the public quote form (multipart or JSON)
func (h *QuoteHandler) Submit(c *gin.Context) {
	var req quote.SubmitRequest
	var file *quoteSvc.Upload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request", err)
			return
		}

		upload, err := readAttachment(c)
		if err != nil {
			response.FromError(c, "attachment rejected", err)
			return
		}
		file = upload
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request", err)
			return
		}
	}

	// Signed-in submitters get their quote linked without registering.
	sess, _ := middleware.GetSession(c)

	result, err := h.quoteService.Submit(c.Request.Context(), &req, file, sess)
	if err != nil {
		h.logger.Warn("quote submission failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.FromError(c, "quote submission failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "quote submitted", result)
}

// readAttachment pulls the optional attachment out of the multipart form.
// Oversize files are rejected before the body is read into memory.
func readAttachment(c *gin.Context) (*quoteSvc.Upload, error) {
	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > attachment.MaxFileSize {
		return nil, xerrors.ErrFileTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to read attachment")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to read attachment")
	}

	return &quoteSvc.Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// List returns every quote, admin fields included (admin only)
func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.quoteService.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list quotes", err)
		return
	}

	response.Success(c, http.StatusOK, "quotes", quotes)
}

// Get returns one quote (admin only)
func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.quoteService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to get quote", err)
		return
	}

	response.Success(c, http.StatusOK, "quote", q)
}

// UpdateStatus applies a status change, optionally with admin notes (admin only)
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	var req quote.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.quoteService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update quote status", err)
		return
	}

	response.Success(c, http.StatusOK, "quote status updated", updated)
}

// UpdateProposal replaces the negotiation fields (admin only)
func (h *QuoteHandler) UpdateProposal(c *gin.Context) {
	var req quote.ProposalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.quoteService.UpdateProposal(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update quote proposal", err)
		return
	}

	response.Success(c, http.StatusOK, "quote proposal updated", updated)
}
