package recipe

import (
	"net/http"

	recipeService "recipe-chatbot/internal/core/recipe"
	"recipe-chatbot/internal/core/store"
	"recipe-chatbot/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜內容處理程序
type Handler struct {
	detailService *recipeService.DetailService
	recipeStore   store.RecipeStore
}

// NewHandler 創建食譜內容處理程序
func NewHandler(detailService *recipeService.DetailService, recipeStore store.RecipeStore) *Handler {
	return &Handler{
		detailService: detailService,
		recipeStore:   recipeStore,
	}
}

// HandleGetRecipe 處理 GET /recipe/:id
// id 是聊天回覆裡偵測到的食譜名稱 slug，沒偵測過就回 404
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id := c.Param("id")

	record, err := h.recipeStore.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		common.LogError("查詢食譜記錄失敗",
			zap.Error(err),
			zap.String("recipe_id", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to look up recipe",
			"code":  common.ErrCodeInternalError,
		})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "recipe not found",
			"code":  common.ErrCodeNotFound,
		})
		return
	}

	detail, err := h.detailService.GetRecipeDetail(c.Request.Context(), record.Name)
	if err != nil {
		common.LogError("生成食譜內容失敗",
			zap.Error(err),
			zap.String("recipe_name", record.Name),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate recipe detail",
			"code":  common.ErrCodeChatServiceError,
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}
