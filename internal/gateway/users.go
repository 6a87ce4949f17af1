package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/middleware"
)

// handleGetCurrentUser はトークンのユーザー自身のデータを取得するハンドラを返す。
func (s *Server) handleGetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		resp, ok := s.forward(c, s.identity, http.MethodGet, "/users/"+userID, nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{notFound: "User not found"}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handleGetUser は指定ユーザーのデータを取得するハンドラを返す。
// パスのuser_idとトークンのユーザーIDが一致しない場合は401を返す
// （認証は通っているが当該リソースへの権限がない）。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID != middleware.GetUserID(c) {
			respondError(c, http.StatusUnauthorized, "User is not authorized to get this data")
			return
		}

		resp, ok := s.forward(c, s.identity, http.MethodGet, "/users/"+userID, nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{notFound: "User not found"}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handlePatchUser はユーザーデータを部分更新するハンドラを返す。
// パス・トークンの一致（401）と保護ユーザー（403）を確認してから転送する。
func (s *Server) handlePatchUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID != middleware.GetUserID(c) {
			respondError(c, http.StatusUnauthorized, "User is not authorized to change this data")
			return
		}
		if s.isProtected(userID) {
			respondError(c, http.StatusForbidden, msgProtectedUser)
			return
		}

		var req userUpdatesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.identity, http.MethodPatch, "/users/"+userID, req, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{
			notFound:  "User not found",
			forbidden: msgInvalidPassword,
		}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// handleChangePassword は指定ユーザーのパスワードを変更するハンドラを返す。
func (s *Server) handleChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID != middleware.GetUserID(c) {
			respondError(c, http.StatusUnauthorized, "User is not authorized to change this data")
			return
		}

		s.changePassword(c, userID)
	}
}

// handleChangeCurrentUserPassword はトークンのユーザー自身のパスワードを
// 変更するハンドラを返す。
func (s *Server) handleChangeCurrentUserPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.changePassword(c, middleware.GetUserID(c))
	}
}

// changePassword はパスワード変更の共通処理。
// 保護ユーザーの確認後、identity providerへ転送する。
func (s *Server) changePassword(c *gin.Context, userID string) {
	if s.isProtected(userID) {
		respondError(c, http.StatusForbidden, msgProtectedUser)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, ok := s.forward(c, s.identity, http.MethodPatch, "/users/"+userID+"/password", req, userID)
	if !ok {
		return
	}
	if !respondTranslated(c, resp, routeMessages{
		notFound:  "User not found",
		forbidden: msgInvalidPassword,
	}) {
		return
	}

	c.Status(http.StatusNoContent)
}

// handleDeleteUser はトークンのユーザー自身を削除するハンドラを返す。
// identity providerでの削除成功後、favoritesサービスのレコードも片付ける複合操作。
// favorites側が失敗しても削除済みのユーザーは復元しない（補償なし）。
func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if s.isProtected(userID) {
			respondError(c, http.StatusForbidden, msgProtectedUser)
			return
		}

		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.identity, http.MethodDelete, "/users", req, userID)
		if !ok {
			return
		}
		// 403はボディ内容で弁別する: ゲートウェイ検証済みのはずのトークンを
		// 下流が拒否した場合は設定不整合として503、パスワード不一致のみ403。
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		// ユーザーのお気に入りレコードを片付ける
		favResp, ok := s.forward(c, s.favorites, http.MethodDelete, "/favorites", nil, userID)
		if !ok {
			return
		}
		if !respondTranslated(c, favResp, routeMessages{}) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
