package http

import (
	"net/http"

	"anoa.com/skinannotator/internal/modules/annotator/dto"
	annotatorService "anoa.com/skinannotator/internal/modules/annotator/service"
	"anoa.com/skinannotator/pkg/response"
	"anoa.com/skinannotator/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AnnotatorHandler struct {
	service annotatorService.AnnotatorService
}

func NewAnnotatorHandler(service annotatorService.AnnotatorService) *AnnotatorHandler {
	return &AnnotatorHandler{service: service}
}

func (h *AnnotatorHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR PROFILE", err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR PROFILE", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *AnnotatorHandler) UpsertProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR UPSERT", err)
		return
	}

	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.service.UpsertProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR UPSERT", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *AnnotatorHandler) GrantRewards(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR REWARDS", err)
		return
	}

	var req dto.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.service.GrantRewards(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, "ANNOTATOR REWARDS", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
