// internal/handlers/genre.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamevault/gamestore-backend/internal/i18n"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type GenreHandler struct {
	genreService *services.GenreService
}

func NewGenreHandler(genreService *services.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// GET /genres
func (h *GenreHandler) GetGenres(c *gin.Context) {
	genres, err := h.genreService.GetGenres()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, genres)
}

// GET /genres/:id/games
func (h *GenreHandler) GetGenreGames(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid genre ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.genreService.GetGenreGames(id, params)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "genre")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /genres
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	genre, err := h.genreService.CreateGenre(&req)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyGenreExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, genre)
}

// DELETE /genres/:id
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid genre ID", nil)
		return
	}

	if err := h.genreService.DeleteGenre(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "genre")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
