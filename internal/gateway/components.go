package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleGetComponents は利用可能な全componentの一覧を取得するハンドラを返す。
// 匿名ルートのためuserIdヘッダーは付与しないが、サービストークンは発行する。
func (s *Server) handleGetComponents() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, ok := s.forward(c, s.components, http.MethodGet, "/components", nil, "")
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}
