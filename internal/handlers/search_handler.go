package handlers

import (
	"net/http"

	"tennis_backend/internal/middleware"
	"tennis_backend/internal/services"
	"tennis_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/search", h.SearchPlayers)
	}
}

func (h *SearchHandler) SearchPlayers(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SearchPlayersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.searchService.SearchPlayers(viewerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
