package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/middleware"
)

// handleGetFavorites はユーザーのお気に入り一覧を取得するハンドラを返す。
func (s *Server) handleGetFavorites() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		resp, ok := s.forward(c, s.favorites, http.MethodGet, "/favorites", nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handleAddFavoriteItem はお気に入りリストにアイテムを追加するハンドラを返す。
// 既に追加済みのアイテムは409になる。
func (s *Server) handleAddFavoriteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req favoriteItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.favorites, http.MethodPost, "/favorites/items", req, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			conflict: "Item is already in favorites list.",
		}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// handleRemoveFavoriteItem はお気に入りリストからアイテムを削除するハンドラを返す。
func (s *Server) handleRemoveFavoriteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req favoriteItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.favorites, http.MethodDelete, "/favorites/items", req, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
