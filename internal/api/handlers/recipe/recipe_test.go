package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	recipeService "recipe-chatbot/internal/core/recipe"
	"recipe-chatbot/internal/core/store"
	"recipe-chatbot/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

type fakeCompleter struct {
	response string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error) {
	return f.response, nil
}

func TestHandleGetRecipe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recipeStore := store.NewMemoryRecipeStore()
	id, err := recipeStore.UpsertDetectedRecipe(context.Background(), "Beef Stew", "user-1")
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	completer := &fakeCompleter{response: `{"name": "Beef Stew", "steps": ["Brown the beef.", "Simmer."]}`}
	handler := NewHandler(recipeService.NewDetailService(completer, nil), recipeStore)

	router := gin.New()
	router.GET("/api/v1/recipe/:id", handler.HandleGetRecipe)

	t.Run("known recipe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipe/"+id, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var detail common.RecipeDetail
		if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if detail.Name != "Beef Stew" || len(detail.Steps) != 2 {
			t.Errorf("detail = %+v", detail)
		}
	})

	t.Run("unknown recipe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipe/never_detected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
