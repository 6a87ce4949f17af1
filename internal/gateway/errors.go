package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/httpclient"
)

// ゲートウェイが返す安定したエラーメッセージ。
// 下流サービスの文言に依存せず、常にこの語彙で応答する。
const (
	msgMicroserviceFailed = "Request to microservice failed"
	msgInvalidToken       = "Invalid token"
	msgInvalidPassword    = "Invalid password"
	msgProtectedUser      = "Protected users can not be modified or deleted"
)

// routeMessages は下流エラーの変換に使うルート固有の文言。
// 空のフィールドは該当ステータスがそのルートで想定されていないことを表し、
// 想定外のステータスは一律に503へ落とす。
type routeMessages struct {
	// notFound は下流404に対応付ける文言。
	notFound string
	// forbidden は下流403をそのまま通す場合の文言。
	// 空の場合、403はボディ内容による弁別にかける。
	forbidden string
	// conflict は下流409に対応付ける文言。
	conflict string
}

// translate は下流レスポンスをゲートウェイのエラー契約に変換する。
// 2xxの場合はok=trueを返し、変換は行わない。
// それ以外はゲートウェイが返すべきステータスとdetail値を返す。
func translate(resp *httpclient.Response, msgs routeMessages) (int, any, bool) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return 0, nil, true
	}

	switch resp.StatusCode {
	case http.StatusServiceUnavailable:
		return http.StatusServiceUnavailable, msgMicroserviceFailed, false
	case http.StatusUnprocessableEntity:
		// 下流のバリデーション詳細をそのまま転送する
		return http.StatusUnprocessableEntity, forwardedDetail(resp.Body), false
	case http.StatusNotFound:
		if msgs.notFound != "" {
			return http.StatusNotFound, msgs.notFound, false
		}
	case http.StatusForbidden:
		if msgs.forbidden != "" {
			return http.StatusForbidden, msgs.forbidden, false
		}
		return translateAmbiguousForbidden(resp.Body)
	case http.StatusConflict:
		if msgs.conflict != "" {
			return http.StatusConflict, msgs.conflict, false
		}
	}

	// 対応付けのないステータスは下流の障害として扱う
	return http.StatusServiceUnavailable, msgMicroserviceFailed, false
}

// translateAmbiguousForbidden は下流の403をボディ内容で弁別する。
// ゲートウェイはユーザートークンを検証済みであり、この時点で下流が
// 「Invalid token」を返すのはサービストークン設定の不整合でしかないため、
// 503に格上げする。「Invalid password」は403のまま通す。
// どちらにも厳密一致しないボディは下流の障害として503にする。
func translateAmbiguousForbidden(body []byte) (int, any, bool) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch payload.Detail {
		case msgInvalidToken:
			return http.StatusServiceUnavailable, msgMicroserviceFailed, false
		case msgInvalidPassword:
			return http.StatusForbidden, msgInvalidPassword, false
		}
	}
	return http.StatusServiceUnavailable, msgMicroserviceFailed, false
}

// forwardedDetail は下流の422ボディをdetail値として転送できる形に解釈する。
// JSONとして解釈できない場合は文字列として返す。
func forwardedDetail(body []byte) any {
	var payload any
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload
	}
	return string(body)
}

// respondError はエラーステータスと安定したエラーボディを書き出す。
func respondError(c *gin.Context, status int, detail any) {
	c.JSON(status, gin.H{"detail": detail})
}

// respondTranslated は下流レスポンスを変換して書き出す。
// 2xxの場合は何もせずtrueを返す。エラーを書き出した場合はfalseを返す。
func respondTranslated(c *gin.Context, resp *httpclient.Response, msgs routeMessages) bool {
	status, detail, ok := translate(resp, msgs)
	if ok {
		return true
	}
	respondError(c, status, detail)
	return false
}
