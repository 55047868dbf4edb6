// internal/handlers/publisher.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamevault/gamestore-backend/internal/i18n"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type PublisherHandler struct {
	publisherService *services.PublisherService
}

func NewPublisherHandler(publisherService *services.PublisherService) *PublisherHandler {
	return &PublisherHandler{publisherService: publisherService}
}

// GET /publishers
func (h *PublisherHandler) GetPublishers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.publisherService.GetPublishers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /publishers/:id
func (h *PublisherHandler) GetPublisher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid publisher ID", nil)
		return
	}

	publisher, err := h.publisherService.GetPublisherByID(id)
	if err != nil {
		utils.NotFoundResponse(c, "publisher")
		return
	}

	utils.SuccessResponse(c, publisher)
}

// GET /publishers/:id/games
func (h *PublisherHandler) GetPublisherGames(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid publisher ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.publisherService.GetPublisherGames(id, params)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "publisher")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /publishers
func (h *PublisherHandler) CreatePublisher(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	publisher, err := h.publisherService.CreatePublisher(&req)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPublisherExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, publisher)
}

// PUT /publishers/:id
func (h *PublisherHandler) UpdatePublisher(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid publisher ID", nil)
		return
	}

	var req services.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	publisher, err := h.publisherService.UpdatePublisher(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "publisher")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, publisher)
}

// DELETE /publishers/:id
func (h *PublisherHandler) DeletePublisher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid publisher ID", nil)
		return
	}

	if err := h.publisherService.DeletePublisher(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "publisher")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
