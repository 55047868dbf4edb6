// internal/services/publisher_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type PublisherService struct {
	db *gorm.DB
}

type CreatePublisherRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	HomePage    string `json:"home_page,omitempty" validate:"omitempty,url"`
}

type UpdatePublisherRequest struct {
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	HomePage    *string `json:"home_page,omitempty" validate:"omitempty,url"`
}

func NewPublisherService(db *gorm.DB) *PublisherService {
	return &PublisherService{db: db}
}

func (s *PublisherService) GetPublishers(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Publisher{})

	if params.Search != "" {
		query = query.Where("company_name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count publishers: %w", err)
	}

	var publishers []models.Publisher
	sorted := utils.ApplySort(query, params, []string{"created_at", "company_name"})
	if err := utils.ApplyPagination(sorted, params).Find(&publishers).Error; err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}

	result := utils.CreatePaginationResult(publishers, total, params)
	return &result, nil
}

func (s *PublisherService) GetPublisherByID(id uuid.UUID) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := s.db.First(&publisher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("publisher not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &publisher, nil
}

// GetPublisherGames lists the publisher's store games.
func (s *PublisherService) GetPublisherGames(id uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if _, err := s.GetPublisherByID(id); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Game{}).Where("publisher_id = ?", id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	var games []models.Game
	sorted := utils.ApplySort(query, params, []string{"created_at", "name", "price"})
	if err := utils.ApplyPagination(sorted, params).Preload("Genres").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	result := utils.CreatePaginationResult(games, total, params)
	return &result, nil
}

func (s *PublisherService) CreatePublisher(req *CreatePublisherRequest) (*models.Publisher, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Publisher
	if err := s.db.Where("company_name = ?", req.CompanyName).First(&existing).Error; err == nil {
		return nil, errors.New("publisher already exists")
	}

	publisher := &models.Publisher{
		CompanyName: req.CompanyName,
		Description: req.Description,
		HomePage:    req.HomePage,
	}
	if err := s.db.Create(publisher).Error; err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	return publisher, nil
}

func (s *PublisherService) UpdatePublisher(id uuid.UUID, req *UpdatePublisherRequest) (*models.Publisher, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	publisher, err := s.GetPublisherByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.HomePage != nil {
		updates["home_page"] = *req.HomePage
	}
	if len(updates) == 0 {
		return publisher, nil
	}

	if err := s.db.Model(publisher).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}
	return publisher, nil
}

func (s *PublisherService) DeletePublisher(id uuid.UUID) error {
	publisher, err := s.GetPublisherByID(id)
	if err != nil {
		return err
	}

	var gameCount int64
	if err := s.db.Model(&models.Game{}).Where("publisher_id = ?", id).Count(&gameCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if gameCount > 0 {
		return errors.New("publisher still has games")
	}

	if err := s.db.Delete(publisher).Error; err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	return nil
}
