// internal/services/comment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

const deletedCommentBody = "[comment deleted]"

type CommentService struct {
	db          *gorm.DB
	gameService *GameService
	userService *UserService
}

type CreateCommentRequest struct {
	Body     string  `json:"body" validate:"required,min=1"`
	ParentID *string `json:"parent_id,omitempty"`
	QuoteID  *string `json:"quote_id,omitempty"`
}

func NewCommentService(db *gorm.DB, gameService *GameService, userService *UserService) *CommentService {
	return &CommentService{
		db:          db,
		gameService: gameService,
		userService: userService,
	}
}

// GetComments returns the comment tree for a game, newest threads first.
// Deleted comments keep their place with the body blanked so replies stay
// anchored.
func (s *CommentService) GetComments(ctx context.Context, gameKey string) ([]models.Comment, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).Where("key = ?", gameKey).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Legacy games have no comments until they are reconciled.
			return []models.Comment{}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("game_id = ? AND parent_id IS NULL", game.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	for i := range comments {
		redactDeleted(&comments[i])
	}
	return comments, nil
}

func redactDeleted(c *models.Comment) {
	if c.Status == models.CommentStatusDeleted {
		c.Body = deletedCommentBody
		c.Quote = ""
	}
	for i := range c.Replies {
		redactDeleted(&c.Replies[i])
	}
}

// CreateComment adds a comment to a game. Commenting on a legacy-only key
// reconciles the game into the primary store first, so the comment always
// has a primary-store row to attach to.
func (s *CommentService) CreateComment(ctx context.Context, userID uuid.UUID, gameKey string, req *CreateCommentRequest) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned(time.Now()) {
		return nil, errors.New("user is banned from commenting")
	}

	game, err := s.gameService.GetGameByKey(ctx, gameKey)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		GameID:     game.ID,
		UserID:     &user.ID,
		AuthorName: user.Username,
		Body:       req.Body,
		Status:     models.CommentStatusVisible,
	}

	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, errors.New("invalid parent id")
		}
		parent, err := s.commentByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.GameID != game.ID {
			return nil, errors.New("parent comment belongs to another game")
		}
		comment.ParentID = &parent.ID
	}

	// A quote snapshots the quoted body; deleting the quoted comment later
	// does not erase it from replies that quoted it.
	if req.QuoteID != nil {
		quoteID, err := uuid.Parse(*req.QuoteID)
		if err != nil {
			return nil, errors.New("invalid quote id")
		}
		quoted, err := s.commentByID(ctx, quoteID)
		if err != nil {
			return nil, err
		}
		if quoted.GameID != game.ID {
			return nil, errors.New("quoted comment belongs to another game")
		}
		if quoted.Status == models.CommentStatusDeleted {
			return nil, errors.New("cannot quote a deleted comment")
		}
		comment.Quote = quoted.Body
	}

	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment soft-deletes by status so the thread structure survives.
// Moderators can delete any comment; users only their own.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID, actorRole models.UserRole) error {
	comment, err := s.commentByID(ctx, commentID)
	if err != nil {
		return err
	}

	isModerator := actorRole == models.UserRoleAdmin ||
		actorRole == models.UserRoleManager ||
		actorRole == models.UserRoleModerator
	isOwner := comment.UserID != nil && *comment.UserID == actorID
	if !isModerator && !isOwner {
		return errors.New("not allowed to delete this comment")
	}

	if err := s.db.WithContext(ctx).Model(comment).
		Update("status", models.CommentStatusDeleted).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// DeleteAndBanAuthor is the moderator action for abusive comments: the
// comment is deleted and its author banned in one step.
func (s *CommentService) DeleteAndBanAuthor(ctx context.Context, commentID uuid.UUID, req *BanUserRequest) error {
	comment, err := s.commentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID == nil {
		return errors.New("comment has no registered author")
	}

	if err := s.db.WithContext(ctx).Model(comment).
		Update("status", models.CommentStatusDeleted).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if _, err := s.userService.BanUser(*comment.UserID, req); err != nil {
		return err
	}
	return nil
}

func (s *CommentService) commentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("comment not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &comment, nil
}
