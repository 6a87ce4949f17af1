package gateway

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleGetCurrencies は利用可能な通貨一覧を取得するハンドラを返す。
// currencyサービスが空のオブジェクトを返した場合も障害として503にする。
func (s *Server) handleGetCurrencies() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, ok := s.forward(c, s.currency, http.MethodGet, "/currencies", nil, "")
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		if isEmptyJSONObject(resp.Body) {
			respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// handleGetExchangeRate は2通貨間の為替レートを取得するハンドラを返す。
func (s *Server) handleGetExchangeRate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := "/currencies/" + c.Param("old_currency_code") + "/" + c.Param("new_currency_code")
		resp, ok := s.forward(c, s.currency, http.MethodGet, path, nil, "")
		if !ok {
			return
		}
		if !respondTranslated(c, resp, routeMessages{}) {
			return
		}

		respondBody(c, http.StatusOK, resp.Body)
	}
}

// isEmptyJSONObject はボディが空、または空のJSONオブジェクトかどうかを返す。
func isEmptyJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}"))
}
