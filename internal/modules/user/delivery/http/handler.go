package http

import (
	"net/http"

	"anoa.com/skinannotator/internal/modules/user/dto"
	userService "anoa.com/skinannotator/internal/modules/user/service"
	"anoa.com/skinannotator/pkg/response"
	"anoa.com/skinannotator/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service userService.AuthService
}

func NewAuthHandler(service userService.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Signup(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, "AUTH SIGNUP", err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var input dto.SigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Signin(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, "AUTH SIGNIN", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "AUTH ME", err)
		return
	}

	me, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, "AUTH ME", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": me})
}
