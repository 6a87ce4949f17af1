// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// ユーザートークンの検証（認証ゲート）、CORS設定、パニックリカバリ、
// リクエストID付与など、ゲートウェイの全ルートで共通して使用する
// ミドルウェアを含む。
package middleware
