package handlers

import (
	"net/http"

	"tennis_backend/internal/middleware"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/services"
	"tennis_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	matchService services.MatchService
	users        repositories.UserRepository
}

func NewMatchHandler(base *BaseHandler, matchService services.MatchService, users repositories.UserRepository) *MatchHandler {
	return &MatchHandler{
		BaseHandler:  base,
		matchService: matchService,
		users:        users,
	}
}

// RegisterRoutes регистрирует маршруты матчей. Запись результата доступна
// только игрокам с полным профилем.
func (h *MatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	matches := rg.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	matches.Use(middleware.RequireCompleteProfile(h.users))
	{
		matches.POST("", h.RecordMatch)
		matches.GET("", h.ListMatches)
	}
}

func (h *MatchHandler) RecordMatch(c *gin.Context) {
	reporterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RecordMatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.matchService.RecordMatch(reporterID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 20)

	matches, err := h.matchService.ListMatches(userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
	})
}
