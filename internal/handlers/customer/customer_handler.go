// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	customerSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/customer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *customerSvc.Service
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *customerSvc.Service, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List returns every customer record (admin only)
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers", customers)
}
