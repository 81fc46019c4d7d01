package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edukit/lesson-planner/internal/ai"
	"edukit/lesson-planner/internal/docgen"
	"edukit/lesson-planner/internal/domain"
	"edukit/lesson-planner/internal/repository"
	"edukit/lesson-planner/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// Missing-input errors are detected before any external call is made.
	ErrMissingAPIKey = errors.New("gemini api key is required")
	ErrMissingModule = errors.New("a curriculum module upload is required")

	// ErrProvider wraps failures of the external completion call (network,
	// auth, quota, unsupported model). One failure aborts the generation;
	// there is no retry and no post-hoc model swap.
	ErrProvider = errors.New("ai provider request failed")

	ErrPlanNotFound = errors.New("lesson plan not found")
)

// GenerationResult carries one finished document back to the handler.
type GenerationResult struct {
	FileName    string
	ContentType string
	Document    []byte
	Model       string // model identifier actually used
}

// PlannerService runs the generation pipeline and manages the archive of
// generated plans.
type PlannerService interface {
	// Generate runs one synchronous pipeline: validate inputs, select a
	// model, render the prompt, call the provider, parse the reply, build
	// and serialize the document. Parse failures surface as
	// *docgen.ParseError; a parsed-but-incomplete matrix is not an error and
	// degrades to empty table cells.
	Generate(ctx context.Context, userID primitive.ObjectID, apiKey string, req *domain.LessonPlanRequest) (*GenerationResult, error)

	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.LessonPlan, error)
	GetDownloadURL(ctx context.Context, userID, planID primitive.ObjectID) (string, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// plannerService implements the PlannerService interface.
type plannerService struct {
	newProvider     ai.ProviderFactory
	preferredModels []string
	planRepo        repository.PlanRepository
	fileStorage     storage.FileStorage
}

// NewPlannerService creates a new instance of plannerService. preferredModels
// may be nil to use the built-in selection order.
func NewPlannerService(
	newProvider ai.ProviderFactory,
	preferredModels []string,
	planRepo repository.PlanRepository,
	fileStorage storage.FileStorage,
) PlannerService {
	return &plannerService{
		newProvider:     newProvider,
		preferredModels: preferredModels,
		planRepo:        planRepo,
		fileStorage:     fileStorage,
	}
}

// Generate implements the single-shot pipeline. No state is shared across
// calls; each invocation dials its own provider with the caller's key and
// closes it on the way out.
func (s *plannerService) Generate(ctx context.Context, userID primitive.ObjectID, apiKey string, req *domain.LessonPlanRequest) (*GenerationResult, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if len(req.ModuleData) == 0 {
		return nil, ErrMissingModule
	}

	provider, err := s.newProvider(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer provider.Close()

	// Model selection happens once, up front. Enumeration failures inside
	// SelectModel fail soft to a default rather than aborting the request.
	model := ai.SelectModel(ctx, provider, s.preferredModels)
	prompt := ai.RenderPrompt(req)

	raw, err := provider.Generate(ctx, model, ai.File{ContentType: req.ModuleContentType, Data: req.ModuleData}, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	matrix, err := docgen.ParseMatrix(raw)
	if err != nil {
		return nil, err
	}

	document, err := docgen.AssembleDocument(req, docgen.ProjectRows(matrix))
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{
		FileName:    docgen.FileName(req.Subject, req.GradeLevel),
		ContentType: docgen.ContentTypeDocx,
		Document:    document,
		Model:       model,
	}

	// Archival is best-effort: the teacher still gets their document even
	// when storage is down, they just lose the history entry.
	s.archive(ctx, userID, req, result)

	return result, nil
}

// archive uploads the finished docx and records its metadata.
func (s *plannerService) archive(ctx context.Context, userID primitive.ObjectID, req *domain.LessonPlanRequest, result *GenerationResult) {
	objectKey := fmt.Sprintf("plans/%s/%s_%s", userID.Hex(), uuid.NewString(), result.FileName)

	if err := s.fileStorage.UploadObject(ctx, objectKey, result.ContentType, result.Document); err != nil {
		log.Printf("WARN: Failed to archive generated plan for user %s: %v", userID.Hex(), err)
		return
	}

	plan := &domain.LessonPlan{
		UserID:      userID,
		Subject:     req.Subject,
		GradeLevel:  req.GradeLevel,
		Quarter:     req.Quarter,
		Model:       result.Model,
		FileName:    result.FileName,
		S3ObjectKey: objectKey,
		Size:        int64(len(result.Document)),
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		log.Printf("WARN: Failed to record archived plan for user %s: %v", userID.Hex(), err)
		// Orphaned object; remove it so storage does not leak.
		_ = s.fileStorage.DeleteObject(ctx, objectKey)
	}
}

// ListPlans returns a teacher's archived plans, newest first.
func (s *plannerService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.LessonPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetDownloadURL presigns a temporary GET URL for one archived plan.
func (s *plannerService) GetDownloadURL(ctx context.Context, userID, planID primitive.ObjectID) (string, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return "", err
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, plan.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}

// DeletePlan removes an archived plan: the stored object first, then the
// metadata record.
func (s *plannerService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, plan.S3ObjectKey); err != nil {
		// Keep going; a dangling object beats a record the user cannot remove.
		log.Printf("WARN: Failed to delete archived object '%s': %v", plan.S3ObjectKey, err)
	}

	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// ownedPlan fetches a plan and checks it belongs to the caller. Somebody
// else's plan reads as not-found so IDs do not leak.
func (s *plannerService) ownedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.LessonPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}
