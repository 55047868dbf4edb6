// internal/services/genre_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type GenreService struct {
	db *gorm.DB
}

type CreateGenreRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	ParentID *string `json:"parent_id,omitempty"`
}

func NewGenreService(db *gorm.DB) *GenreService {
	return &GenreService{db: db}
}

// GetGenres returns top-level genres with their children preloaded, so the
// hierarchy renders in one response.
func (s *GenreService) GetGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := s.db.Preload("Children").
		Where("parent_id IS NULL").
		Order("name ASC").
		Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *GenreService) GetGenreByID(id uuid.UUID) (*models.Genre, error) {
	var genre models.Genre
	if err := s.db.Preload("Children").First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("genre not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &genre, nil
}

// GetGenreGames lists store games tagged with the genre. Legacy-only
// products do not appear here until their first key lookup copies them in.
func (s *GenreService) GetGenreGames(id uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if _, err := s.GetGenreByID(id); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Game{}).
		Joins("JOIN game_genres ON game_genres.game_id = games.id").
		Where("game_genres.genre_id = ?", id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	var games []models.Game
	sorted := utils.ApplySort(query, params, []string{"created_at", "name", "price"})
	if err := utils.ApplyPagination(sorted, params).Preload("Publisher").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	result := utils.CreatePaginationResult(games, total, params)
	return &result, nil
}

func (s *GenreService) CreateGenre(req *CreateGenreRequest) (*models.Genre, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Genre
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, errors.New("genre already exists")
	}

	genre := &models.Genre{Name: req.Name}

	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, errors.New("invalid parent id")
		}
		if _, err := s.GetGenreByID(parentID); err != nil {
			return nil, err
		}
		genre.ParentID = &parentID
	}

	if err := s.db.Create(genre).Error; err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

func (s *GenreService) DeleteGenre(id uuid.UUID) error {
	genre, err := s.GetGenreByID(id)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Genre{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if childCount > 0 {
		return errors.New("genre has child genres")
	}

	if err := s.db.Delete(genre).Error; err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	return nil
}
