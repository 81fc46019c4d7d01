package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"edukit/lesson-planner/internal/docgen"
	"edukit/lesson-planner/internal/domain"
	"edukit/lesson-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Maximum accepted module upload. Modules are held in memory for the
// duration of one request, so keep this modest.
const maxModuleSize = 20 << 20 // 20 MiB

// Header carrying the caller's own Gemini API key. The key is used for this
// request only and never stored or logged.
const apiKeyHeader = "X-Gemini-Api-Key"

// PlanHandler holds the planner service dependency.
type PlanHandler struct {
	plannerService service.PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plannerService service.PlannerService) *PlanHandler {
	return &PlanHandler{plannerService: plannerService}
}

// --- Response Structs ---

type PlanResponse struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	GradeLevel string `json:"gradeLevel"`
	Quarter    string `json:"quarter"`
	Model      string `json:"model"`
	FileName   string `json:"fileName"`
	Size       int64  `json:"size"`
	CreatedAt  string `json:"createdAt"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a Daily Lesson Log document
// @Description Runs one generation: form metadata + uploaded module are sent to Gemini, the reply is projected onto the DLL table and returned as a .docx attachment.
// @Tags Plans
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param X-Gemini-Api-Key header string true "Caller's Gemini API key (per-session, never stored)"
// @Param module formData file true "Curriculum module (txt/pdf)"
// @Success 200 {file} binary "Generated document"
// @Failure 400 {object} gin.H "Missing API key or module"
// @Failure 502 {object} gin.H "Provider or parse failure"
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	apiKey := c.GetHeader(apiKeyHeader)
	if apiKey == "" {
		// Plain browser form posts cannot set headers.
		apiKey = c.PostForm("gemini_api_key")
	}

	req, err := bindLessonPlanRequest(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.plannerService.Generate(c.Request.Context(), userID, apiKey, req)
	if err != nil {
		var parseErr *docgen.ParseError
		switch {
		case errors.Is(err, service.ErrMissingAPIKey), errors.Is(err, service.ErrMissingModule):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &parseErr):
			// Surface the parse diagnostic; the user's only recourse is to
			// resubmit and hope for better-formed output.
			abortWithError(c, http.StatusBadGateway, fmt.Sprintf("The AI response could not be used: %v", parseErr))
		case errors.Is(err, service.ErrProvider):
			abortWithError(c, http.StatusBadGateway, "The AI provider request failed. Please try again.")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during generation")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Document)
}

// ListPlans godoc
// @Summary List the caller's archived lesson plans
// @Tags Plans
// @Produce json
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	plans, err := h.plannerService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list lesson plans")
		return
	}

	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, mapPlanToResponse(&plan))
	}
	c.JSON(http.StatusOK, responses)
}

// GetDownloadURL godoc
// @Summary Get a temporary download URL for an archived plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} DownloadURLResponse
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id}/download [get]
func (h *PlanHandler) GetDownloadURL(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	url, err := h.plannerService.GetDownloadURL(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: url})
}

// DeletePlan godoc
// @Summary Delete an archived plan
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.plannerService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete lesson plan")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Helpers ---

// bindLessonPlanRequest assembles a LessonPlanRequest from the multipart
// form. Objective fields follow the pattern "objective_monday" ..
// "objective_friday"; absent days simply stay empty.
func bindLessonPlanRequest(c *gin.Context) (*domain.LessonPlanRequest, error) {
	req := &domain.LessonPlanRequest{
		GradeLevel:          c.PostForm("grade_level"),
		Subject:             c.PostForm("subject"),
		Quarter:             c.PostForm("quarter"),
		ContentStandard:     c.PostForm("content_standard"),
		PerformanceStandard: c.PostForm("performance_standard"),
		Competency:          c.PostForm("competency"),
		Objectives:          make(map[string]string, len(domain.Weekdays)),
	}

	for _, day := range domain.Weekdays {
		req.Objectives[day] = c.PostForm("objective_" + strings.ToLower(day))
	}

	fileHeader, err := c.FormFile("module")
	if err != nil {
		// Missing upload is reported by the service as ErrMissingModule;
		// here we only reject what we cannot read.
		return req, nil
	}
	if fileHeader.Size > maxModuleSize {
		return nil, fmt.Errorf("module upload exceeds the %d MiB limit", maxModuleSize>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read module upload: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read module upload: %v", err)
	}

	req.ModuleName = fileHeader.Filename
	req.ModuleContentType = fileHeader.Header.Get("Content-Type")
	if req.ModuleContentType == "" {
		req.ModuleContentType = "application/octet-stream"
	}
	req.ModuleData = data

	return req, nil
}

func mapPlanToResponse(plan *domain.LessonPlan) PlanResponse {
	return PlanResponse{
		ID:         plan.ID.Hex(),
		Subject:    plan.Subject,
		GradeLevel: plan.GradeLevel,
		Quarter:    plan.Quarter,
		Model:      plan.Model,
		FileName:   plan.FileName,
		Size:       plan.Size,
		CreatedAt:  plan.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// currentUserID parses the authenticated user's ObjectID out of the gin
// context set by AuthMiddleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(idStr)
}
