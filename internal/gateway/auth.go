package gateway

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// setAuthCookie はユーザートークンをhttp-onlyのセッションCookieとして設定する。
// ヘッダー「token」での提示も受け付けるため、ボディのトークンはそのまま返す。
func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, 0, "/", "", false, true)
}

// handleRegister は新規ユーザーを登録するハンドラを返す。
// identity providerへのユーザー作成と、favoritesサービスへの
// お気に入りレコードの払い出しを順に行う複合操作。
// favorites側が失敗しても作成済みのユーザーは取り消さない（補償なし）。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.identity, http.MethodPost, "/users", req, "")
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		var auth authResponse
		if err := json.Unmarshal(resp.Body, &auth); err != nil || auth.Token == "" {
			log.Printf("identity providerの応答にトークンが含まれていない")
			respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
			return
		}

		// 発行されたトークンから新規ユーザーIDを取り出す。
		// ここで検証に失敗するのはidentity providerとの秘密鍵不整合を意味する。
		claims, err := s.codec.Decode(auth.Token)
		if err != nil {
			log.Printf("identity providerが発行したトークンの検証に失敗: %v", err)
			respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
			return
		}

		// 新規ユーザーのお気に入りレコードを払い出す
		favResp, ok := s.forward(c, s.favorites, http.MethodPost, "/favorites", nil, claims.UserID)
		if !ok {
			return
		}
		if !respondTranslated(c, favResp, routeMessages{}) {
			return
		}

		setAuthCookie(c, auth.Token)
		respondBody(c, http.StatusCreated, resp.Body)
	}
}

// handleLogin はユーザーを認証するハンドラを返す。
// 認証に成功するとidentity providerの発行したトークンをCookieに設定する。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		resp, ok := s.forward(c, s.identity, http.MethodPost, "/login", req, "")
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{forbidden: "Invalid credentials"}) {
			return
		}

		var auth authResponse
		if err := json.Unmarshal(resp.Body, &auth); err != nil || auth.Token == "" {
			log.Printf("identity providerの応答にトークンが含まれていない")
			respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
			return
		}

		setAuthCookie(c, auth.Token)
		respondBody(c, http.StatusOK, resp.Body)
	}
}
