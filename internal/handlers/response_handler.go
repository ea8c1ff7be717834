package handlers

import (
	"log/slog"
	"net/http"

	"github.com/formpilot/form-service/internal/services"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(
	responseService services.ResponseService,
	exportService services.ExportService,
	logger *slog.Logger,
) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse accepts one respondent's answers for a published form.
// Validation failures come back as the full per-question set.
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting response", "form_id", req.FormID)

	if req.UserInfo.IP == "" {
		req.UserInfo.IP = c.ClientIP()
	}

	response, err := h.responseService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetFormResponses lists every response for a form in submission order.
func (h *ResponseHandler) GetFormResponses(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	responses, err := h.responseService.GetByForm(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ExportFormResponses streams responses as CSV or xlsx.
func (h *ResponseHandler) ExportFormResponses(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	format := services.ExportFormat(c.DefaultQuery("format", "csv"))

	h.LogRequest(c, "Exporting responses", "form_id", id, "format", format)

	data, filename, err := h.exportService.ExportResponses(c.Request.Context(), id, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	contentType := "text/csv"
	if format == services.FormatExcel {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
