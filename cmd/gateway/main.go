// API Gatewayサービスのエントリポイント。
// identity provider・product・favorites・components・currencyの
// 5つのマイクロサービスを単一のHTTPサーフェスに集約する。
// 外部からアクセス可能な唯一のサービスであり、セキュリティの境界線となる。
package main

import (
	"log"

	"github.com/kbe-aw2022/gateway/internal/gateway"
)

func main() {
	cfg := gateway.LoadConfig()

	server := gateway.NewServer(cfg)

	log.Printf("Gatewayサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}
