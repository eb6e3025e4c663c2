package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/order"
)

// multipartOverhead: запас на поля формы сверх размера файла.
const multipartOverhead = 1 << 20

type OrderHandler struct {
	getOrderUC     *order.GetOrderUseCase
	listOrdersUC   *order.ListOrdersUseCase
	submitWorkUC   *order.SubmitWorkUseCase
	reviewUC       *order.ReviewDeliveryUseCase
	updateStatusUC *order.UpdateStatusUseCase
	adminApproveUC *order.AdminApproveDeliveryUseCase
	adminCancelUC  *order.AdminCancelUseCase
	deleteOrderUC  *order.DeleteOrderUseCase
	maxUploadBytes int64
}

func NewOrderHandler(
	getOrderUC *order.GetOrderUseCase,
	listOrdersUC *order.ListOrdersUseCase,
	submitWorkUC *order.SubmitWorkUseCase,
	reviewUC *order.ReviewDeliveryUseCase,
	updateStatusUC *order.UpdateStatusUseCase,
	adminApproveUC *order.AdminApproveDeliveryUseCase,
	adminCancelUC *order.AdminCancelUseCase,
	deleteOrderUC *order.DeleteOrderUseCase,
	maxUploadBytes int64,
) *OrderHandler {
	return &OrderHandler{
		getOrderUC:     getOrderUC,
		listOrdersUC:   listOrdersUC,
		submitWorkUC:   submitWorkUC,
		reviewUC:       reviewUC,
		updateStatusUC: updateStatusUC,
		adminApproveUC: adminApproveUC,
		adminCancelUC:  adminCancelUC,
		deleteOrderUC:  deleteOrderUC,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.getOrderUC.Execute(c.Request.Context(), actor, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(found))
}

// ListOrders обслуживает GET /api/orders и GET /api/admin/orders. Выборка зависит от роли.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	page, err := h.listOrdersUC.Execute(c.Request.Context(), actor, order.ListOrdersInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToOrderViewResponses(page.Orders), page.Total, limit, offset)
}

// Deliver обрабатывает POST /api/orders/:id/deliver.
// Принимает multipart (message, file) или JSON {message, file_ref}.
func (h *OrderHandler) Deliver(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input order.SubmitWorkInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if h.maxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
		}
		input.Message = c.PostForm("message")

		fileHeader, err := c.FormFile("file")
		switch {
		case err == nil:
			file, err := fileHeader.Open()
			if err != nil {
				response.Error(c, apperror.New(apperror.ErrCodeBadRequest, "не удалось прочитать файл"))
				return
			}
			defer file.Close()
			input.File = file
			input.FileName = fileHeader.Filename
		case errors.Is(err, http.ErrMissingFile):
		default:
			response.Error(c, apperror.New(apperror.ErrCodeBadRequest, "некорректная multipart форма"))
			return
		}
	} else {
		var req dto.DeliverRequest
		if !bindJSON(c, &req) {
			return
		}
		input.Message = req.Message
		input.FileRef = req.FileRef
	}

	delivered, err := h.submitWorkUC.Execute(c.Request.Context(), actor, orderID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(delivered))
}

// Review обрабатывает POST /api/orders/:id/review {action: accept|request_changes, feedback}.
func (h *OrderHandler) Review(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	reviewed, err := h.reviewUC.Execute(c.Request.Context(), actor, orderID, req.Action, req.Feedback)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(reviewed))
}

// UpdateStatus обрабатывает PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateStatusUC.Execute(c.Request.Context(), actor, orderID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(updated))
}

func (h *OrderHandler) AdminApproveDelivery(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	approved, err := h.adminApproveUC.Execute(c.Request.Context(), actor, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(approved))
}

func (h *OrderHandler) AdminCancel(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.adminCancelUC.Execute(c.Request.Context(), actor, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(cancelled))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteOrderUC.Execute(c.Request.Context(), actor, orderID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
