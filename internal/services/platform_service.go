// internal/services/platform_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type PlatformService struct {
	db *gorm.DB
}

type CreatePlatformRequest struct {
	Type string `json:"type" validate:"required,min=1,max=100"`
}

func NewPlatformService(db *gorm.DB) *PlatformService {
	return &PlatformService{db: db}
}

func (s *PlatformService) GetPlatforms() ([]models.Platform, error) {
	var platforms []models.Platform
	if err := s.db.Order("type ASC").Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	return platforms, nil
}

func (s *PlatformService) CreatePlatform(req *CreatePlatformRequest) (*models.Platform, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Platform
	if err := s.db.Where("type = ?", req.Type).First(&existing).Error; err == nil {
		return nil, errors.New("platform already exists")
	}

	platform := &models.Platform{Type: req.Type}
	if err := s.db.Create(platform).Error; err != nil {
		return nil, fmt.Errorf("failed to create platform: %w", err)
	}
	return platform, nil
}

func (s *PlatformService) DeletePlatform(id uuid.UUID) error {
	var platform models.Platform
	if err := s.db.First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("platform not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&platform).Error; err != nil {
		return fmt.Errorf("failed to delete platform: %w", err)
	}
	return nil
}
