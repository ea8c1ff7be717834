package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/repositories"
	"github.com/formpilot/form-service/internal/services"
	"github.com/gin-gonic/gin"
)

const maxImageSizeBytes = 5 << 20 // 5MB, matching the builder UI limit

type FormHandler struct {
	BaseHandler
	formService services.FormService
	uploadDir   string
}

func NewFormHandler(formService services.FormService, uploadDir string, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
		uploadDir:   uploadDir,
	}
}

// CreateForm creates a new draft form.
func (h *FormHandler) CreateForm(c *gin.Context) {
	h.LogRequest(c, "Creating form")

	var req services.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.formService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message:  "Form created",
		Data:     result.Form,
		Warnings: result.Warnings,
	})
}

// ListForms lists forms, newest first.
func (h *FormHandler) ListForms(c *gin.Context) {
	filters := repositories.FormFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if published := c.Query("published"); published != "" {
		value := published == "true"
		filters.IsPublished = &value
	}

	forms, total, err := h.formService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forms": forms,
		"total": total,
	})
}

// GetForm retrieves one form by id.
func (h *FormHandler) GetForm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm fully replaces a form's content and settings.
func (h *FormHandler) UpdateForm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.formService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:  "Form updated",
		Data:     result.Form,
		Warnings: result.Warnings,
	})
}

// DeleteForm removes a form and every response referencing it.
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting form", "form_id", id)

	if err := h.formService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Form deleted successfully"})
}

// ===== QUESTION OPERATIONS =====

type addQuestionRequest struct {
	Type string `json:"type" binding:"required"`
}

func (h *FormHandler) AddQuestion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req addQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	form, err := h.formService.AddQuestion(c.Request.Context(), id, req.Type)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid question payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.formService.UpdateQuestion(c.Request.Context(), id, index, question)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:  "Question updated",
		Data:     result.Form,
		Warnings: result.Warnings,
	})
}

func (h *FormHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	form, err := h.formService.DeleteQuestion(c.Request.Context(), id, index)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) MoveQuestion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.MoveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	form, err := h.formService.MoveQuestion(c.Request.Context(), id, req.From, req.To)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) DuplicateQuestion(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	form, err := h.formService.DuplicateQuestion(c.Request.Context(), id, index)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// PublishForm flips a draft live. Publishing twice is a conflict.
func (h *FormHandler) PublishForm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Publishing form", "form_id", id)

	form, err := h.formService.Publish(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// ===== IMAGE UPLOADS =====

// UploadHeaderImage stores an image file and sets it as the form header.
func (h *FormHandler) UploadHeaderImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	path, ok := h.saveImage(c, "headerImage")
	if !ok {
		return
	}

	form, err := h.formService.SetHeaderImage(c.Request.Context(), id, path)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UploadQuestionImage stores an image file and attaches it to one question.
func (h *FormHandler) UploadQuestionImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	path, ok := h.saveImage(c, "image")
	if !ok {
		return
	}

	form, err := h.formService.SetQuestionImage(c.Request.Context(), id, index, path)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// saveImage validates and stores a multipart image upload, returning the
// public path. Only image content types are accepted, capped at 5MB.
func (h *FormHandler) saveImage(c *gin.Context, field string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No file uploaded"})
		return "", false
	}

	if file.Size > maxImageSizeBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Image size must be less than 5MB"})
		return "", false
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Only image files are allowed"})
		return "", false
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logger.Error("Failed to store upload", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to store file"})
		return "", false
	}

	return "/uploads/" + filename, true
}
