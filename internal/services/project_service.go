package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

type ProjectService struct {
	projectRepo *repositories.ProjectRepo
	log         *zap.Logger
}

func NewProjectService(projectRepo *repositories.ProjectRepo, log *zap.Logger) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, log: log}
}

func (s *ProjectService) Create(ctx context.Context, p *models.Project) error {
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	return s.projectRepo.Create(ctx, p)
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, f repositories.ProjectFilter) ([]models.Project, error) {
	return s.projectRepo.List(ctx, f)
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, p *models.Project) (*models.Project, error) {
	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ID = existing.ID
	if p.Status == "" {
		p.Status = existing.Status
	}
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

// Delete refuses to remove a project that still has tracked items; callers
// must delete or move them first.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.projectRepo.TrackedItemCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Validation("project", "still has tracked items")
	}
	return s.projectRepo.Delete(ctx, id)
}
