package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS はすべてのオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// このゲートウェイは公開APIであり、全オリジン・全メソッド・全ヘッダーを許可する。
// Cookie送信（credentials）を許可するため、ワイルドカードではなく
// リクエスト元のオリジンをそのまま返す。
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "*")
		c.Header("Access-Control-Max-Age", "86400")

		// credentials付きリクエストではAllow-Headersにワイルドカードが使えないため、
		// プリフライトで要求されたヘッダーをそのまま許可する
		if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
			c.Header("Access-Control-Allow-Headers", reqHeaders)
		} else {
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, token")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
