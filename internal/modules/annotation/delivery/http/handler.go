package http

import (
	"net/http"

	"anoa.com/skinannotator/internal/modules/annotation/dto"
	annotationService "anoa.com/skinannotator/internal/modules/annotation/service"
	"anoa.com/skinannotator/pkg/request"
	"anoa.com/skinannotator/pkg/response"
	"github.com/gin-gonic/gin"
)

type AnnotationHandler struct {
	service annotationService.AnnotationService
}

func NewAnnotationHandler(service annotationService.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{service: service}
}

// GetNext answers the next pending record, or null when the queue is empty.
func (h *AnnotationHandler) GetNext(c *gin.Context) {
	annotation, err := h.service.GetNext(c.Request.Context())
	if err != nil {
		response.ResponseError(c, "ANNOTATION NEXT", err)
		return
	}

	if annotation == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

func (h *AnnotationHandler) Diagnostic(c *gin.Context) {
	diagnostic, err := h.service.Diagnostic(c.Request.Context())
	if err != nil {
		response.ResponseError(c, "ANNOTATION DIAGNOSTIC", err)
		return
	}

	c.JSON(http.StatusOK, diagnostic)
}

func (h *AnnotationHandler) Lock(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "ANNOTATION LOCK", err)
		return
	}

	imgID, err := request.ParseInt64Param(c, "id")
	if err != nil {
		response.ResponseError(c, "ANNOTATION LOCK", err)
		return
	}

	res, err := h.service.Lock(c.Request.Context(), imgID, userID)
	if err != nil {
		response.ResponseError(c, "ANNOTATION LOCK", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnnotationHandler) Unlock(c *gin.Context) {
	imgID, err := request.ParseInt64Param(c, "id")
	if err != nil {
		response.ResponseError(c, "ANNOTATION UNLOCK", err)
		return
	}

	if err := h.service.Unlock(c.Request.Context(), imgID); err != nil {
		response.ResponseError(c, "ANNOTATION UNLOCK", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AnnotationHandler) Skip(c *gin.Context) {
	imgID, err := request.ParseInt64Param(c, "id")
	if err != nil {
		response.ResponseError(c, "ANNOTATION SKIP", err)
		return
	}

	if err := h.service.Skip(c.Request.Context(), imgID); err != nil {
		response.ResponseError(c, "ANNOTATION SKIP", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AnnotationHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "ANNOTATION UPDATE", err)
		return
	}

	imgID, err := request.ParseInt64Param(c, "id")
	if err != nil {
		response.ResponseError(c, "ANNOTATION UPDATE", err)
		return
	}

	var req dto.UpdateAnnotationRequest
	if err := request.DecodeStrictJSON(c, &req); err != nil {
		response.ResponseError(c, "ANNOTATION UPDATE", err)
		return
	}

	annotation, err := h.service.Update(c.Request.Context(), imgID, userID, req)
	if err != nil {
		response.ResponseError(c, "ANNOTATION UPDATE", err)
		return
	}

	c.JSON(http.StatusOK, annotation)
}

func (h *AnnotationHandler) Delete(c *gin.Context) {
	imgID, err := request.ParseInt64Param(c, "id")
	if err != nil {
		response.ResponseError(c, "ANNOTATION DELETE", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), imgID); err != nil {
		response.ResponseError(c, "ANNOTATION DELETE", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
