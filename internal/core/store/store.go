package store

import (
	"context"

	"recipe-chatbot/internal/pkg/common"
)

// RecipeStore 食譜儲存介面，Redis 與記憶體兩個實作
type RecipeStore interface {
	UpsertDetectedRecipe(ctx context.Context, name, userID string) (string, error)
	GetRecipeByName(ctx context.Context, name string) (*common.RecipeRecord, error)
	GetRecipeByID(ctx context.Context, id string) (*common.RecipeRecord, error)
}

// ProfileStore 用戶個人化資料儲存介面
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*common.UserProfile, error)
}

var (
	_ RecipeStore  = (*RedisRecipeStore)(nil)
	_ RecipeStore  = (*MemoryRecipeStore)(nil)
	_ ProfileStore = (*RedisProfileStore)(nil)
	_ ProfileStore = (*MemoryProfileStore)(nil)
)
