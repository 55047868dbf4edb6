// internal/handlers/platform.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamevault/gamestore-backend/internal/i18n"
	"github.com/gamevault/gamestore-backend/internal/services"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

type PlatformHandler struct {
	platformService *services.PlatformService
}

func NewPlatformHandler(platformService *services.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

// GET /platforms
func (h *PlatformHandler) GetPlatforms(c *gin.Context) {
	platforms, err := h.platformService.GetPlatforms()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, platforms)
}

// POST /platforms
func (h *PlatformHandler) CreatePlatform(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	platform, err := h.platformService.CreatePlatform(&req)
	if err != nil {
		if strings.Contains(err.Error(), "exists") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, platform)
}

// DELETE /platforms/:id
func (h *PlatformHandler) DeletePlatform(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid platform ID", nil)
		return
	}

	if err := h.platformService.DeletePlatform(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "platform")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
