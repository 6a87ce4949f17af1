// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// identity provider・product・favorites・components・currencyの
// 5つのマイクロサービスを単一のHTTPサーフェスに集約する。
// ユーザートークンの検証はゲートウェイで一度だけ行い、下流への転送時には
// サービスごとの秘密鍵で署名した短命のサービストークンを都度発行する。
// 下流のステータス・ボディはルートごとの規則で安定したエラー語彙に変換する。
// ゲートウェイ自身は永続状態を持たない。
package gateway
