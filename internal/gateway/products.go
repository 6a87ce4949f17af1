package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/middleware"
)

// handleGetProducts はユーザーの全productを取得するハンドラを返す。
func (s *Server) handleGetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		resp, ok := s.forward(c, s.product, http.MethodGet, "/products", nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handleGetProduct はproductをIDで取得するハンドラを返す。
// 所有権の判定は下流のproductサービスが行う。
func (s *Server) handleGetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		resp, ok := s.forward(c, s.product, http.MethodGet, "/products/"+c.Param("product_id"), nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			notFound:  "Product not found.",
			forbidden: "User is not allowed to get a product not owned.",
		}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handlePostProduct はユーザーのproductを新規作成するハンドラを返す。
func (s *Server) handlePostProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.product, http.MethodPost, "/products", req, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			forbidden: "Users are only allowed to create products for themselves.",
		}) {
			return
		}

		respondBody(c, http.StatusCreated, resp.Body)
	}
}

// handlePatchProduct はproductを更新するハンドラを返す。
func (s *Server) handlePatchProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.product, http.MethodPatch, "/products/"+c.Param("product_id"), req, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			notFound:  "Product not found.",
			forbidden: "Modifications are only allowed by the owner of the product.",
		}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// handleDeleteProduct はproductを削除するハンドラを返す。
func (s *Server) handleDeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		resp, ok := s.forward(c, s.product, http.MethodDelete, "/products/"+c.Param("product_id"), nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			notFound:  "Product not found.",
			forbidden: "User is not allowed to delete a product not owned.",
		}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
