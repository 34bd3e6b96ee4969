package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/services"
	"github.com/promptforge/prompt-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PromptHandler struct {
	BaseHandler
	service services.PromptService
	export  services.ExportService
}

func NewPromptHandler(service services.PromptService, export services.ExportService, logger utils.Logger) *PromptHandler {
	return &PromptHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// ===== CRUD =====

// ListPrompts returns a page of the caller's prompts, newest first
// @Summary List own prompts
// @Tags prompts
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /prompts [get]
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	h.LogRequest(c, "Listing prompts")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	resp, err := h.service.List(c.Request.Context(), userID, page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePrompt persists a new prompt with its rendered template
// @Summary Create a prompt
// @Tags prompts
// @Accept json
// @Produce json
// @Success 201 {object} models.Prompt
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /prompts [post]
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	h.LogRequest(c, "Creating prompt")

	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req models.PromptCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	prompt, err := h.service.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// GetPrompt returns one of the caller's prompts
// @Summary Get a prompt
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 404 {object} ErrorResponse "Not found or not owned"
// @Router /prompts/{id} [get]
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	h.LogRequest(c, "Getting prompt")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	promptID, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid prompt ID"})
		return
	}

	prompt, err := h.service.Get(c.Request.Context(), userID, promptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// UpdatePrompt applies a partial update and regenerates the template when a
// template input changed
// @Summary Update a prompt
// @Tags prompts
// @Accept json
// @Produce json
// @Param id path int true "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Not found or not owned"
// @Router /prompts/{id} [put]
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	h.LogRequest(c, "Updating prompt")

	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	promptID, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid prompt ID"})
		return
	}

	var req models.PromptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	prompt, err := h.service.Update(c.Request.Context(), user, promptID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// DeletePrompt removes one of the caller's prompts
// @Summary Delete a prompt
// @Tags prompts
// @Param id path int true "Prompt ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Not found or not owned"
// @Router /prompts/{id} [delete]
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	h.LogRequest(c, "Deleting prompt")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	promptID, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid prompt ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, promptID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== EXECUTION =====

// ExecutePrompt renders the template and runs it against the generation API
// @Summary Execute a prompt
// @Tags prompts
// @Accept json
// @Produce json
// @Success 200 {object} models.ExecutePromptResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Referenced prompt not found or not owned"
// @Failure 500 {object} ErrorResponse "Generation API unavailable"
// @Router /prompts/execute [post]
func (h *PromptHandler) ExecutePrompt(c *gin.Context) {
	h.LogRequest(c, "Executing prompt")

	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req models.ExecutePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Execute(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== EXPORT =====

// ExportPrompts streams the caller's prompt history as an .xlsx download
// @Summary Export prompts as a spreadsheet
// @Tags prompts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /prompts/export [get]
func (h *PromptHandler) ExportPrompts(c *gin.Context) {
	h.LogRequest(c, "Exporting prompts")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	data, filename, err := h.export.ExportPrompts(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ===== HELPERS =====

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ===== ERROR HANDLING =====

func (h *PromptHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Prompt not found",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrGenerationNotConfigured):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Generation API is not configured",
		})
	case errors.Is(err, services.ErrGenerationFailed):
		h.LogError(c, err, "Generation request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Generation request failed",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
