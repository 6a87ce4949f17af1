package gateway

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbe-aw2022/gateway/pkg/httpclient"
	"github.com/kbe-aw2022/gateway/pkg/middleware"
	"github.com/kbe-aw2022/gateway/pkg/token"
)

// Server はAPI GatewayサービスのHTTPサーバー。
// リクエスト間で共有する可変状態は持たない。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// codec はユーザートークンの検証に使用するCodec。
	codec *token.Codec
	// protectedUserIDs は変更・削除を禁止するユーザーIDの集合。
	protectedUserIDs map[string]struct{}

	// 下流サービスごとの転送先（クライアントとサービストークンIssuerの組）。
	identity   downstream
	product    downstream
	favorites  downstream
	components downstream
	currency   downstream
}

// downstream は1つの下流サービスへの転送に必要な組。
type downstream struct {
	// client は対象サービスへのHTTPクライアント。
	client *httpclient.Client
	// issuer は対象サービス専用の秘密鍵を持つサービストークンIssuer。
	issuer *token.Issuer
}

// newDownstream はベースURLと秘密鍵から転送先を生成する。
func newDownstream(baseURL, accessKey string) downstream {
	return downstream{
		client: httpclient.New(baseURL),
		issuer: token.NewIssuer(accessKey),
	}
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	protected := make(map[string]struct{}, len(cfg.ProtectedUserIDs))
	for _, id := range cfg.ProtectedUserIDs {
		protected[id] = struct{}{}
	}

	s := &Server{
		router:           router,
		port:             cfg.Port,
		codec:            token.NewCodec(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTIssuer),
		protectedUserIDs: protected,
		identity:         newDownstream(cfg.ServiceURLs.IdentityProvider, cfg.IdentityProviderAccessKey),
		product:          newDownstream(cfg.ServiceURLs.Product, cfg.ProductServiceAccessKey),
		favorites:        newDownstream(cfg.ServiceURLs.Favorites, cfg.FavoritesServiceAccessKey),
		components:       newDownstream(cfg.ServiceURLs.Components, cfg.ComponentsServiceAccessKey),
		currency:         newDownstream(cfg.ServiceURLs.Currency, cfg.CurrencyServiceAccessKey),
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証不要の公開ルート
	s.router.GET("/components", s.handleGetComponents())
	s.router.GET("/currencies", s.handleGetCurrencies())
	s.router.GET("/currencies/:old_currency_code/:new_currency_code", s.handleGetExchangeRate())

	// 認証エンドポイント（Cookie発行）
	s.router.POST("/register", s.handleRegister())
	s.router.POST("/login", s.handleLogin())

	// 認証必須のエンドポイント
	authed := s.router.Group("/")
	authed.Use(middleware.TokenAuth(s.codec))
	{
		users := authed.Group("/users")
		{
			users.GET("", s.handleGetCurrentUser())
			users.DELETE("", s.handleDeleteUser())
			users.PATCH("/password", s.handleChangeCurrentUserPassword())
			users.GET("/:user_id", s.handleGetUser())
			users.PATCH("/:user_id", s.handlePatchUser())
			users.PATCH("/:user_id/password", s.handleChangePassword())
		}

		products := authed.Group("/products")
		{
			products.GET("", s.handleGetProducts())
			products.POST("", s.handlePostProduct())
			products.GET("/:product_id", s.handleGetProduct())
			products.PATCH("/:product_id", s.handlePatchProduct())
			products.DELETE("/:product_id", s.handleDeleteProduct())
		}

		favorites := authed.Group("/favorites")
		{
			favorites.GET("", s.handleGetFavorites())
			favorites.POST("/items", s.handleAddFavoriteItem())
			favorites.DELETE("/items", s.handleRemoveFavoriteItem())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}

// forward はサービストークンを発行して下流サービスへ1リクエストを転送する。
// userIDが空の場合はuserIdヘッダーを付与しない（匿名ルート）。
// トークン発行・転送自体に失敗した場合は503を書き出してfalseを返す。
func (s *Server) forward(c *gin.Context, target downstream, method, path string, body any, userID string) (*httpclient.Response, bool) {
	serviceToken, err := target.issuer.Issue(time.Now())
	if err != nil {
		log.Printf("サービストークンの発行に失敗: %s %s: %v", method, path, err)
		respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
		return nil, false
	}

	resp, err := target.client.Do(c.Request.Context(), method, path, body, httpclient.Headers{
		AccessToken: serviceToken,
		UserID:      userID,
		RequestID:   middleware.GetRequestID(c),
	})
	if err != nil {
		log.Printf("下流サービスへの転送に失敗: %s %s: %v", method, path, err)
		respondError(c, http.StatusServiceUnavailable, msgMicroserviceFailed)
		return nil, false
	}
	return resp, true
}

// isProtected は指定ユーザーが保護対象かどうかを返す。
func (s *Server) isProtected(userID string) bool {
	_, ok := s.protectedUserIDs[userID]
	return ok
}

// respondBody は下流の成功レスポンスボディを指定ステータスでそのまま返す。
func respondBody(c *gin.Context, status int, body []byte) {
	if len(body) == 0 {
		c.Status(status)
		return
	}
	c.Data(status, "application/json", body)
}
