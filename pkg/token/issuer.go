package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// serviceTokenTTL はサービストークンの有効期間。
// 転送のたびに新規発行するため、下流への1リクエスト分をカバーできれば十分。
const serviceTokenTTL = time.Minute

// Issuer は下流マイクロサービス向けの短命アクセストークンを発行する。
// サービスごとに専用の秘密鍵を持つIssuerを1つずつ生成して使用する。
type Issuer struct {
	// secret は対象サービスと共有するHS256署名用の秘密鍵。
	secret []byte
	// ttl は発行するトークンの有効期間。
	ttl time.Duration
}

// NewIssuer は指定された秘密鍵を持つIssuerを生成する。
func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    serviceTokenTTL,
	}
}

// Issue は有効期限のみをクレームに持つサービストークンを発行する。
// トークンはキャッシュ・再利用せず、下流への転送のたびに呼び出すこと。
func (i *Issuer) Issue(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("サービストークンの署名に失敗: %w", err)
	}
	return signed, nil
}
