// internal/handlers/comment.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamevault/gamestore-backend/internal/i18n"
	"github.com/gamevault/gamestore-backend/internal/models"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GET /games/:key/comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(c.Request.Context(), c.Param("key"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, comments)
}

// POST /games/:key/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, c.Param("key"), &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "game")
		case strings.Contains(err.Error(), "banned"):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentAdded),
		"comment": comment,
	})
}

// DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID, models.UserRole(role)); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "comment")
		case strings.Contains(err.Error(), "not allowed"):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentDeleted),
	})
}

// POST /comments/:id/ban
func (h *CommentHandler) DeleteAndBanAuthor(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	var req services.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if err := h.commentService.DeleteAndBanAuthor(c.Request.Context(), commentID, &req); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "comment")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentBanned),
	})
}
