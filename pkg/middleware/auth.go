package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/token"
)

// tokenKey はユーザートークンを運ぶHTTPヘッダーおよびCookieの名前。
// ブラウザクライアントはCookie、APIクライアントはヘッダーを使用する。
const tokenKey = "token"

// contextKeyUserID はGinコンテキストにユーザーIDを格納するキー。
const contextKeyUserID = "user_id"

// TokenAuth はユーザートークンを検証するGinミドルウェアを返す。
// トークンは「token」ヘッダーまたは同名のCookieから取得する（ヘッダー優先）。
// トークン欠落・署名不正・期限切れ・audience/issuer不一致は区別せず、
// 一律403 {"detail":"Invalid token"} で打ち切る。
// 検証に成功した場合はコンテキストにユーザーIDを設定する。
func TokenAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(tokenKey)
		if raw == "" {
			if cookie, err := c.Cookie(tokenKey); err == nil {
				raw = cookie
			}
		}

		claims, err := codec.Decode(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Invalid token"})
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID はGinコンテキストから認証済みユーザーIDを取得する。
// TokenAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(contextKeyUserID)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
