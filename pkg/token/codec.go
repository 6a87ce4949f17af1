package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CallerClaims はフロントエンドが提示するユーザートークンのクレーム（ペイロード）。
// identity providerが登録・ログイン時に発行する。ゲートウェイは署名・有効期限・
// audience・issuerの検証のみを行い、それ以外の内容には関知しない。
type CallerClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"userId"`
}

// Codec はユーザートークンの署名付きエンコード・デコードを行う。
// 検証条件（秘密鍵・audience・issuer）は生成時に固定する。
type Codec struct {
	// secret はHS256署名用の秘密鍵。
	secret []byte
	// audience は検証時に要求するaudクレーム。
	audience string
	// issuer は検証時に要求するissクレーム。
	issuer string
}

// NewCodec は指定された秘密鍵・audience・issuerで検証するCodecを生成する。
func NewCodec(secret, audience, issuer string) *Codec {
	return &Codec{
		secret:   []byte(secret),
		audience: audience,
		issuer:   issuer,
	}
}

// Encode はユーザーIDと有効期限からHS256署名済みトークンを生成する。
// identity providerが発行するトークンと同一のクレーム構造を持つ。
func (c *Codec) Encode(userID string, expiresAt time.Time) (string, error) {
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Audience:  jwt.ClaimStrings{c.audience},
			Issuer:    c.issuer,
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("ユーザートークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Decode はトークンを検証し、クレームを返す。
// 署名不正・期限切れ・audience/issuer不一致はすべて単一のerrorとして返す。
// 失敗理由を呼び出し元で区別してはならない（呼び出し元は一律に
// 「Invalid token」として扱う）。
func (c *Codec) Decode(raw string) (*CallerClaims, error) {
	claims := &CallerClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(c.audience),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("ユーザートークンの検証に失敗: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("ユーザートークンの検証に失敗")
	}
	return claims, nil
}
