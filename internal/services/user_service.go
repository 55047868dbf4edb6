// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type UserService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type UpdateUserProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,username"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

type BanUserRequest struct {
	Reason string `json:"reason" validate:"required"`
	Days   *int   `json:"days,omitempty" validate:"omitempty,min=1"`
}

func NewUserService(db *gorm.DB, notificationService *NotificationService) *UserService {
	return &UserService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) ListUsers(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	sorted := utils.ApplySort(query, params, []string{"created_at", "username", "email", "last_login_at"})
	if err := utils.ApplyPagination(sorted, params).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// BanUser bars a user from commenting. Days nil means a permanent ban.
func (s *UserService) BanUser(userID uuid.UUID, req *BanUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.UserRoleAdmin {
		return nil, errors.New("cannot ban an administrator")
	}

	updates := map[string]interface{}{
		"status":       models.UserStatusBanned,
		"banned_until": nil,
	}
	if req.Days != nil {
		until := time.Now().AddDate(0, 0, *req.Days)
		updates["banned_until"] = until
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to ban user: %w", err)
	}

	go func() {
		if err := s.notificationService.SendBanNotification(user, req.Reason); err != nil {
			fmt.Printf("Failed to send ban notification: %v\n", err)
		}
	}()

	return user, nil
}

func (s *UserService) UnbanUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Updates(map[string]interface{}{
		"status":       models.UserStatusActive,
		"banned_until": nil,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to unban user: %w", err)
	}
	return user, nil
}

// SetRole changes a user's role. Only admins reach this through the router.
func (s *UserService) SetRole(userID uuid.UUID, role models.UserRole) (*models.User, error) {
	switch role {
	case models.UserRoleAdmin, models.UserRoleManager, models.UserRoleModerator, models.UserRoleUser:
	default:
		return nil, errors.New("invalid role")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}
	return user, nil
}
