package handlers

import (
	"net/http"

	"tennis_backend/internal/middleware"
	"tennis_backend/internal/services"
	"tennis_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes регистрирует маршруты профилей и блокировок.
// Просмотр чужого профиля доступен и анонимно (видны только публичные).
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/users")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:id", h.GetProfile)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/blocked", h.ListBlocked)
		users.PATCH("/profile", h.UpdateProfile)
		users.POST("/:id/block", h.BlockUser)
		users.DELETE("/:id/block", h.UnblockUser)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	// Пустой viewerID - анонимный зритель
	viewerID := middleware.GetUserID(c)

	profile, err := h.userService.GetProfile(c.Param("id"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) BlockUser(c *gin.Context) {
	blockerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.BlockUser(blockerID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User blocked",
	})
}

func (h *UserHandler) UnblockUser(c *gin.Context) {
	blockerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.UnblockUser(blockerID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User unblocked",
	})
}

func (h *UserHandler) ListBlocked(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	blocked, err := h.userService.ListBlocked(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blockedUsers": blocked,
	})
}
