package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout は下流1呼び出しあたりのタイムアウト。
// 超過した場合は転送障害としてerrorになり、呼び出し元が503に対応付ける。
const defaultTimeout = 10 * time.Second

// Client は下流マイクロサービスへのHTTPクライアント。
// サービスごとに1つ生成し、接続先のベースURLを保持する。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
}

// New は新しい下流サービス用HTTPクライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "https://cs-product-service.deta.dev"）を指定する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
	}
}

// Headers は下流リクエストに付与する識別ヘッダー。
type Headers struct {
	// AccessToken は対象サービス向けに発行した短命のサービストークン。
	AccessToken string
	// UserID はユーザー単位の操作で対象ユーザーを示す。空の場合は付与しない。
	UserID string
	// RequestID は相関用のリクエストID。空の場合は付与しない。
	RequestID string
}

// Response は下流サービスからの応答。
// ステータスコードの解釈（エラー変換）は呼び出し元が行う。
type Response struct {
	// StatusCode は下流サービスが返したHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
}

// Do は指定パスにJSONリクエストを送信し、ステータスとボディをそのまま返す。
// bodyがnilでない場合はJSONとしてシリアライズして送信する。
// 2xx以外のステータスもerrorにはせずResponseとして返す。errorになるのは
// 接続失敗・タイムアウト・コンテキストキャンセル等の転送障害のみ。
func (c *Client) Do(ctx context.Context, method, path string, body any, headers Headers) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if headers.AccessToken != "" {
		req.Header.Set("microserviceAccessToken", headers.AccessToken)
	}
	if headers.UserID != "" {
		req.Header.Set("userId", headers.UserID)
	}
	if headers.RequestID != "" {
		req.Header.Set("X-Request-ID", headers.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
