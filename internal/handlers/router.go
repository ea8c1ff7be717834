package handlers

import (
	"log/slog"

	"github.com/formpilot/form-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
}

func NewHandlerManager(
	formService services.FormService,
	responseService services.ResponseService,
	exportService services.ExportService,
	uploadDir string,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		formHandler:     NewFormHandler(formService, uploadDir, logger),
		responseHandler: NewResponseHandler(responseService, exportService, logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, uploadDir string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "form-service",
		})
	})

	router.Static("/uploads", uploadDir)

	v1 := router.Group("/api/v1")
	{
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.UpdateForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
			forms.POST("/:id/publish", hm.formHandler.PublishForm)

			// Question management
			forms.POST("/:id/questions", hm.formHandler.AddQuestion)
			forms.PUT("/:id/questions/move", hm.formHandler.MoveQuestion)
			forms.PUT("/:id/questions/:index", hm.formHandler.UpdateQuestion)
			forms.DELETE("/:id/questions/:index", hm.formHandler.DeleteQuestion)
			forms.POST("/:id/questions/:index/duplicate", hm.formHandler.DuplicateQuestion)

			// Image uploads
			forms.POST("/:id/header-image", hm.formHandler.UploadHeaderImage)
			forms.POST("/:id/questions/:index/image", hm.formHandler.UploadQuestionImage)

			// Responses for a form
			forms.GET("/:id/responses", hm.responseHandler.GetFormResponses)
			forms.GET("/:id/responses/export", hm.responseHandler.ExportFormResponses)
		}

		responses := v1.Group("/responses")
		{
			responses.POST("", hm.responseHandler.SubmitResponse)
		}
	}
}
