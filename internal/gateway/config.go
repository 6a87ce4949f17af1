package gateway

import (
	"os"
	"strings"
)

// Config はゲートウェイの全設定。環境変数から構築し、NewServerに注入する。
// 秘密鍵やURLをモジュールレベルの変数として持たず、すべてここに集約する。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// JWTSecret はユーザートークン検証用の秘密鍵。identity providerと共有する。
	JWTSecret string
	// JWTAudience はユーザートークンに要求するaudクレーム。
	JWTAudience string
	// JWTIssuer はユーザートークンに要求するissクレーム。
	JWTIssuer string
	// IdentityProviderAccessKey はidentity provider向けサービストークンの秘密鍵。
	IdentityProviderAccessKey string
	// ProductServiceAccessKey はproductサービス向けサービストークンの秘密鍵。
	ProductServiceAccessKey string
	// FavoritesServiceAccessKey はfavoritesサービス向けサービストークンの秘密鍵。
	FavoritesServiceAccessKey string
	// ComponentsServiceAccessKey はcomponentsサービス向けサービストークンの秘密鍵。
	ComponentsServiceAccessKey string
	// CurrencyServiceAccessKey はcurrencyサービス向けサービストークンの秘密鍵。
	CurrencyServiceAccessKey string
	// ServiceURLs は下流サービスのベースURL。
	ServiceURLs serviceURLConfig
	// ProtectedUserIDs は変更・削除を禁止するユーザーIDの一覧。
	ProtectedUserIDs []string
}

// serviceURLConfig は下流サービスのURL設定。
type serviceURLConfig struct {
	IdentityProvider string
	Product          string
	Favorites        string
	Components       string
	Currency         string
}

// LoadConfig は環境変数からConfigを構築する。
// 未設定の項目には開発用のデフォルト値を使用する。
func LoadConfig() Config {
	return Config{
		Port:                       getEnvOr("PORT", "8080"),
		JWTSecret:                  getEnvOr("JWT_SECRET", "dev-secret-key"),
		JWTAudience:                getEnvOr("JWT_AUDIENCE", "kbe-aw2022-frontend.netlify.app"),
		JWTIssuer:                  getEnvOr("JWT_ISSUER", "cs-identity-provider.deta.dev"),
		IdentityProviderAccessKey:  getEnvOr("IDENTITY_PROVIDER_ACCESS_KEY", "dev-identity-access-key"),
		ProductServiceAccessKey:    getEnvOr("PRODUCT_SERVICE_ACCESS_KEY", "dev-product-access-key"),
		FavoritesServiceAccessKey:  getEnvOr("FAVORITES_SERVICE_ACCESS_KEY", "dev-favorites-access-key"),
		ComponentsServiceAccessKey: getEnvOr("COMPONENTS_SERVICE_ACCESS_KEY", "dev-components-access-key"),
		CurrencyServiceAccessKey:   getEnvOr("CURRENCY_SERVICE_ACCESS_KEY", "dev-currency-access-key"),
		ServiceURLs: serviceURLConfig{
			IdentityProvider: getEnvOr("IDENTITY_PROVIDER_URL", "https://cs-identity-provider.deta.dev"),
			Product:          getEnvOr("PRODUCT_SERVICE_URL", "https://cs-product-service.deta.dev"),
			Favorites:        getEnvOr("FAVORITES_SERVICE_URL", "https://cs-favorites-service.deta.dev"),
			Components:       getEnvOr("COMPONENTS_SERVICE_URL", "https://cs-components-service.deta.dev"),
			Currency:         getEnvOr("CURRENCY_SERVICE_URL", "https://cs-currency-service.deta.dev"),
		},
		ProtectedUserIDs: splitCommaList(os.Getenv("PROTECTED_USER_IDS")),
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// splitCommaList はカンマ区切りの環境変数値をリストに分解する。
func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
