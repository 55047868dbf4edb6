// internal/handlers/game.go
package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamevault/gamestore-backend/internal/catalog"
	"github.com/gamevault/gamestore-backend/internal/i18n"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// parseCriteria builds the filter bundle from query parameters. List
// parameters accept both repeated keys and comma-separated values.
func parseCriteria(c *gin.Context) catalog.FilterCriteria {
	criteria := catalog.FilterCriteria{
		Name:            c.Query("name"),
		Genres:          queryList(c, "genres"),
		Platforms:       queryList(c, "platforms"),
		Publishers:      queryList(c, "publishers"),
		PublishedWithin: c.Query("publishedWithin"),
		Sort:            c.Query("sort"),
		PageSize:        c.DefaultQuery("pageSize", "10"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	criteria.Page = page

	if minStr := c.Query("minPrice"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			criteria.MinPrice = &min
		}
	}
	if maxStr := c.Query("maxPrice"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			criteria.MaxPrice = &max
		}
	}

	return criteria
}

func queryList(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// GET /games
func (h *GameHandler) GetGames(c *gin.Context) {
	criteria := parseCriteria(c)

	result, err := h.gameService.GetGames(c.Request.Context(), criteria)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, result.Items, gin.H{
		"pagination": gin.H{
			"page":  result.Page,
			"pages": result.Pages,
			"total": result.Total,
		},
	})
}

// GET /games/:key
func (h *GameHandler) GetGame(c *gin.Context) {
	key := c.Param("key")

	game, err := h.gameService.GetGameByKey(c.Request.Context(), key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "game")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, game)
}

// POST /games
func (h *GameHandler) CreateGame(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "taken") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyGameKeyTaken))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyGameCreated),
		"game":    game,
	})
}

// PUT /games/:key
func (h *GameHandler) UpdateGame(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	key := c.Param("key")

	var req services.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), key, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "game")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyGameUpdated),
		"game":    game,
	})
}

// DELETE /games/:key
func (h *GameHandler) DeleteGame(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	key := c.Param("key")

	if err := h.gameService.DeleteGame(c.Request.Context(), key); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "game")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyGameDeleted),
	})
}

// POST /games/:key/image
func (h *GameHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	key := c.Param("key")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	game, err := h.gameService.UploadGameImage(c.Request.Context(), key, data, header.Header.Get("Content-Type"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "game")
			return
		}
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"game":    game,
	})
}

// GET /games/:key/download
func (h *GameHandler) DownloadGame(c *gin.Context) {
	key := c.Param("key")

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

	url, err := h.gameService.DownloadGame(c.Request.Context(), userID, key)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "game")
		case strings.Contains(err.Error(), "not been purchased"):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"download_url": url})
}
