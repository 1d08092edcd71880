package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shellac-studio/shellac/pkg/module"
)

func innerMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /assets", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("assets"))
	})
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("root"))
	})
	return mux
}

func TestModulePrefix(t *testing.T) {
	t.Run("valid prefix", func(t *testing.T) {
		m := module.New("/api", innerMux())
		if m.Prefix() != "/api" {
			t.Errorf("prefix = %q, want /api", m.Prefix())
		}
	})

	t.Run("invalid prefixes panic", func(t *testing.T) {
		for _, prefix := range []string{"", "api", "/api/v1"} {
			func() {
				defer func() {
					if recover() == nil {
						t.Errorf("New(%q) did not panic", prefix)
					}
				}()
				module.New(prefix, innerMux())
			}()
		}
	})
}

func TestModuleServe(t *testing.T) {
	m := module.New("/api", innerMux())

	t.Run("strips prefix before dispatch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/assets", nil))

		if rec.Body.String() != "assets" {
			t.Errorf("body = %q, want assets", rec.Body.String())
		}
	})

	t.Run("bare prefix maps to root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

		if rec.Body.String() != "root" {
			t.Errorf("body = %q, want root", rec.Body.String())
		}
	})
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", innerMux())

	var order []string
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "first")
			next.ServeHTTP(w, r)
		})
	})
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "second")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/assets", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", innerMux()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	t.Run("dispatches to mounted module", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/assets", nil))

		if rec.Body.String() != "assets" {
			t.Errorf("body = %q, want assets", rec.Body.String())
		}
	})

	t.Run("falls back to native mux", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		if rec.Body.String() != "ok" {
			t.Errorf("body = %q, want ok", rec.Body.String())
		}
	})

	t.Run("trailing slash normalized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/assets/", nil))

		if rec.Body.String() != "assets" {
			t.Errorf("body = %q, want assets", rec.Body.String())
		}
	})

	t.Run("unknown path returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
