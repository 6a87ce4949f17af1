// Package token はゲートウェイで扱う2種類のJWTを提供する。
//
// ユーザートークン（identity providerが発行しフロントエンドが提示する）を
// 検証するCodecと、下流マイクロサービスへの転送時にゲートウェイが
// 自身を証明するための短命サービストークンを発行するIssuerを含む。
package token
