package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recipe-chatbot/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisRecipeStore Redis 版食譜儲存
// 鍵為名稱 slug，同名 upsert 冪等
type RedisRecipeStore struct {
	client *redis.Client
}

// NewRedisRecipeStore 創建 Redis 食譜儲存並測試連線
func NewRedisRecipeStore(client *redis.Client) (*RedisRecipeStore, error) {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisRecipeStore{client: client}, nil
}

func recipeKey(id string) string {
	return "recipe:" + id
}

// UpsertDetectedRecipe 寫入偵測到的食譜，回傳確定性 id
func (s *RedisRecipeStore) UpsertDetectedRecipe(ctx context.Context, name, userID string) (string, error) {
	id := common.SlugifyRecipeName(name)
	if id == "" {
		return "", fmt.Errorf("recipe name produced empty id: %q", name)
	}

	record := common.RecipeRecord{
		ID:         id,
		Name:       name,
		UserID:     userID,
		DetectedAt: time.Now(),
	}
	data, err := common.ToJSON(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal recipe record: %w", err)
	}

	if err := s.client.Set(ctx, recipeKey(id), data, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to set recipe record: %w", err)
	}
	return id, nil
}

// GetRecipeByName 以名稱查回紀錄，查無回傳 nil
func (s *RedisRecipeStore) GetRecipeByName(ctx context.Context, name string) (*common.RecipeRecord, error) {
	id := common.SlugifyRecipeName(name)
	if id == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, recipeKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe record: %w", err)
	}

	var record common.RecipeRecord
	if err := common.ParseJSONBytes(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe record: %w", err)
	}
	return &record, nil
}

// MemoryRecipeStore 行程內食譜儲存：Redis 未啟用時的預設，也供測試替換
type MemoryRecipeStore struct {
	mu      sync.RWMutex
	records map[string]common.RecipeRecord
}

// NewMemoryRecipeStore 創建行程內食譜儲存
func NewMemoryRecipeStore() *MemoryRecipeStore {
	return &MemoryRecipeStore{
		records: make(map[string]common.RecipeRecord),
	}
}

// UpsertDetectedRecipe 寫入偵測到的食譜，回傳確定性 id
func (s *MemoryRecipeStore) UpsertDetectedRecipe(ctx context.Context, name, userID string) (string, error) {
	id := common.SlugifyRecipeName(name)
	if id == "" {
		return "", fmt.Errorf("recipe name produced empty id: %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = common.RecipeRecord{
		ID:         id,
		Name:       name,
		UserID:     userID,
		DetectedAt: time.Now(),
	}
	return id, nil
}

// GetRecipeByName 以名稱查回紀錄，查無回傳 nil
func (s *MemoryRecipeStore) GetRecipeByName(ctx context.Context, name string) (*common.RecipeRecord, error) {
	id := common.SlugifyRecipeName(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		cp := record
		return &cp, nil
	}
	return nil, nil
}

// GetRecipeByID 以 slug id 直接查回紀錄
func (s *MemoryRecipeStore) GetRecipeByID(ctx context.Context, id string) (*common.RecipeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		cp := record
		return &cp, nil
	}
	return nil, nil
}

// GetRecipeByID 以 slug id 直接查回紀錄
func (s *RedisRecipeStore) GetRecipeByID(ctx context.Context, id string) (*common.RecipeRecord, error) {
	data, err := s.client.Get(ctx, recipeKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe record: %w", err)
	}

	var record common.RecipeRecord
	if err := common.ParseJSONBytes(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe record: %w", err)
	}
	return &record, nil
}
