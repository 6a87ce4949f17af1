// Package httpclient は下流マイクロサービスへのHTTP通信を行うクライアントを提供する。
//
// ゲートウェイが各マイクロサービス（identity provider、product、favorites、
// components、currency）のAPIを呼び出す際に使用する。サービストークンと
// ユーザーIDのヘッダー付与、タイムアウト、ステータス・ボディの素通し返却など、
// 下流呼び出しの共通パターンを統一する。
package httpclient
