package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// DepartmentStore is the persistence surface the department service needs
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]models.Department, error)
}

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	CreateDepartment(ctx context.Context, role models.RoleType, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
}

type departmentServiceImpl struct {
	departmentRepo DepartmentStore
	logger         zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo DepartmentStore, logger zerolog.Logger) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateDepartment adds a new department. Admin only.
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, role models.RoleType, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := appauth.Authorize(role, appauth.ActionDepartmentManage); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apperrors.NewValidationError("code", "code is required")
	}

	department := &models.Department{
		Name: strings.TrimSpace(req.Name),
		Code: code,
	}

	if _, err := s.departmentRepo.Create(ctx, department); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("Failed to create department")
		return nil, err
	}

	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name, Code: department.Code}, nil
}

// ListDepartments returns every department, for signup forms and filters
func (s *departmentServiceImpl) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list departments")
		return nil, err
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, dto.DepartmentResponse{ID: d.ID, Name: d.Name, Code: d.Code})
	}
	return responses, nil
}
