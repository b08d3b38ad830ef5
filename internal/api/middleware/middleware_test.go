package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.POST("/chat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestBodySizeLimit(t *testing.T) {
	router := newTestRouter(BodySizeLimit(64))

	t.Run("oversized body rejected", func(t *testing.T) {
		body := strings.Repeat("x", 200)
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}
		if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
			t.Errorf("body missing error code: %s", w.Body.String())
		}
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(RateLimit(1, time.Minute))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"one"}`)))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"two"}`)))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestDeduplication(t *testing.T) {
	router := newTestRouter(Deduplication(nil))

	body := `{"message":"same payload for dedup"}`
	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	dup := httptest.NewRecorder()
	router.ServeHTTP(dup, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	if dup.Code != http.StatusTooManyRequests {
		t.Errorf("duplicate request status = %d, want %d", dup.Code, http.StatusTooManyRequests)
	}

	other := httptest.NewRecorder()
	router.ServeHTTP(other, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"a different payload"}`)))
	if other.Code != http.StatusOK {
		t.Errorf("distinct request status = %d, want %d", other.Code, http.StatusOK)
	}
}
