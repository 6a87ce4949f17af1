package gateway

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

// testProductBody はproductテストで使用するリクエストボディ。
const testProductBody = `{"name":"test pc","description":"test build","component_ids":["comp-1","comp-2"]}`

// TestHandleGetProducts はproduct一覧取得ハンドラのテスト。
func TestHandleGetProducts(t *testing.T) {
	t.Parallel()

	t.Run("ユーザーのproduct一覧を取得できること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, r *http.Request) {
				verifyServiceToken(t, r, testProductAccessKey)
				if r.Header.Get("userId") != "user-1" {
					t.Errorf("userIdヘッダー = %q, want %q", r.Header.Get("userId"), "user-1")
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id":"prod-1","name":"test pc"}]`))
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodGet, "/products", "", userToken)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}
		if !strings.Contains(w.Body.String(), "prod-1") {
			t.Errorf("下流のボディが転送されていない: %s", w.Body.String())
		}
	})

	t.Run("トークンなしは403 Invalid tokenになること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{})

		w := doRequest(s, http.MethodGet, "/products", "", "")

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
		if detail := parseDetail(t, w); detail != "Invalid token" {
			t.Errorf("detail = %q, want %q", detail, "Invalid token")
		}
	})
}

// TestHandleGetProduct はproduct単体取得ハンドラのテスト。
func TestHandleGetProduct(t *testing.T) {
	t.Parallel()

	t.Run("IDを指定して取得できること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/products/prod-1" {
					t.Errorf("productへのパス = %q, want %q", r.URL.Path, "/products/prod-1")
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"prod-1","name":"test pc"}`))
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodGet, "/products/prod-1", "", userToken)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("404はProduct not found.になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodGet, "/products/missing", "", userToken)

		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
		if detail := parseDetail(t, w); detail != "Product not found." {
			t.Errorf("detail = %q, want %q", detail, "Product not found.")
		}
	})

	t.Run("他人のproductの403は所有権の文言になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodGet, "/products/prod-other", "", userToken)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
		if detail := parseDetail(t, w); detail != "User is not allowed to get a product not owned." {
			t.Errorf("detail = %q", detail)
		}
	})
}

// TestHandlePostProduct はproduct新規作成ハンドラのテスト。
func TestHandlePostProduct(t *testing.T) {
	t.Parallel()

	t.Run("作成成功で201とボディを返すこと", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/products" {
					t.Errorf("productへの転送先が不正: %s %s", r.Method, r.URL.Path)
				}
				body, _ := io.ReadAll(r.Body)
				if !strings.Contains(string(body), `"component_ids":["comp-1","comp-2"]`) {
					t.Errorf("component_idsが転送されていない: %s", string(body))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"prod-new","name":"test pc"}`))
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPost, "/products", testProductBody, userToken)

		if w.Code != http.StatusCreated {
			t.Fatalf("ステータスコード: got %d, want %d (body=%s)", w.Code, http.StatusCreated, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "prod-new") {
			t.Errorf("作成されたproductが返されていない: %s", w.Body.String())
		}
	})

	t.Run("403は自分用にしか作成できない文言になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPost, "/products", testProductBody, userToken)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
		if detail := parseDetail(t, w); detail != "Users are only allowed to create products for themselves." {
			t.Errorf("detail = %q", detail)
		}
	})

	t.Run("必須フィールドが欠けている場合は転送前に422になること", func(t *testing.T) {
		t.Parallel()

		var productCalled bool
		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				productCalled = true
				w.WriteHeader(http.StatusCreated)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPost, "/products", `{"name":"test pc"}`, userToken)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
		if productCalled {
			t.Error("バリデーション失敗にもかかわらず下流へ転送された")
		}
	})
}

// TestHandlePatchProduct はproduct更新ハンドラのテスト。
func TestHandlePatchProduct(t *testing.T) {
	t.Parallel()

	t.Run("更新成功で204を返すこと", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPatch || r.URL.Path != "/products/prod-1" {
					t.Errorf("productへの転送先が不正: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusNoContent)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPatch, "/products/prod-1", testProductBody, userToken)

		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード: got %d, want %d (body=%s)", w.Code, http.StatusNoContent, w.Body.String())
		}
	})

	t.Run("403は所有者のみ更新可能の文言になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPatch, "/products/prod-other", testProductBody, userToken)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
		if detail := parseDetail(t, w); detail != "Modifications are only allowed by the owner of the product." {
			t.Errorf("detail = %q", detail)
		}
	})

	t.Run("404はProduct not found.になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodPatch, "/products/missing", testProductBody, userToken)

		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestHandleDeleteProduct はproduct削除ハンドラのテスト。
func TestHandleDeleteProduct(t *testing.T) {
	t.Parallel()

	t.Run("削除成功で204を返すこと", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/products/prod-1" {
					t.Errorf("productへの転送先が不正: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusNoContent)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodDelete, "/products/prod-1", "", userToken)

		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNoContent)
		}
	})

	t.Run("403は他人のproductを削除できない文言になること", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, testBackends{
			product: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		})
		userToken := generateTestToken(t, "user-1")

		w := doRequest(s, http.MethodDelete, "/products/prod-other", "", userToken)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
		if detail := parseDetail(t, w); detail != "User is not allowed to delete a product not owned." {
			t.Errorf("detail = %q", detail)
		}
	})
}
