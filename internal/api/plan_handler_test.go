package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"edukit/lesson-planner/internal/docgen"
	"edukit/lesson-planner/internal/domain"
	"edukit/lesson-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubPlannerService lets handler tests script the service outcome.
type stubPlannerService struct {
	result *service.GenerationResult
	err    error

	gotAPIKey string
	gotReq    *domain.LessonPlanRequest
}

func (s *stubPlannerService) Generate(ctx context.Context, userID primitive.ObjectID, apiKey string, req *domain.LessonPlanRequest) (*service.GenerationResult, error) {
	s.gotAPIKey = apiKey
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubPlannerService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.LessonPlan, error) {
	return []domain.LessonPlan{}, nil
}

func (s *stubPlannerService) GetDownloadURL(ctx context.Context, userID, planID primitive.ObjectID) (string, error) {
	return "", service.ErrPlanNotFound
}

func (s *stubPlannerService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	return service.ErrPlanNotFound
}

func testRouter(svc service.PlannerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPlanHandler(svc)

	// Stand-in for AuthMiddleware: a fixed authenticated user.
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
	})
	router.POST("/plans/generate", handler.GeneratePlan)
	return router
}

// generateForm builds a multipart body with the standard fields and a small
// module upload.
func generateForm(t *testing.T, withModule bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"grade_level":       "Grade 5",
		"subject":           "Science",
		"quarter":           "Quarter 1 - Week 1",
		"content_standard":  "Matter",
		"objective_monday":  "Identify states of matter",
		"objective_tuesday": "Compare solids and liquids",
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if withModule {
		part, err := writer.CreateFormFile("module", "module1.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("module text"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGeneratePlanReturnsAttachment(t *testing.T) {
	svc := &stubPlannerService{result: &service.GenerationResult{
		FileName:    "DLL_Science_Grade_5.docx",
		ContentType: docgen.ContentTypeDocx,
		Document:    []byte("PKfake"),
		Model:       "models/gemini-1.5-flash",
	}}
	router := testRouter(svc)

	body, contentType := generateForm(t, true)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, "user-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, docgen.ContentTypeDocx, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="DLL_Science_Grade_5.docx"`)
	assert.Equal(t, "PKfake", w.Body.String())

	// The handler passed through the caller's key and parsed the form.
	assert.Equal(t, "user-key", svc.gotAPIKey)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "Science", svc.gotReq.Subject)
	assert.Equal(t, "Identify states of matter", svc.gotReq.Objectives["Monday"])
	assert.Equal(t, []byte("module text"), svc.gotReq.ModuleData)
}

func TestGeneratePlanMissingAPIKey(t *testing.T) {
	svc := &stubPlannerService{err: service.ErrMissingAPIKey}
	router := testRouter(svc)

	body, contentType := generateForm(t, true)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "api key")
}

func TestGeneratePlanMissingModule(t *testing.T) {
	svc := &stubPlannerService{err: service.ErrMissingModule}
	router := testRouter(svc)

	body, contentType := generateForm(t, false)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, "user-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePlanParseFailure(t *testing.T) {
	svc := &stubPlannerService{err: &docgen.ParseError{Reason: "response is not a JSON object of lesson parts"}}
	router := testRouter(svc)

	body, contentType := generateForm(t, true)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, "user-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "not a JSON object")
}

func TestGeneratePlanProviderFailure(t *testing.T) {
	svc := &stubPlannerService{err: service.ErrProvider}
	router := testRouter(svc)

	body, contentType := generateForm(t, true)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, "user-key")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
