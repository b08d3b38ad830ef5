package store

import (
	"context"
	"fmt"
	"sync"

	"recipe-chatbot/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisProfileStore Redis 版用戶資料儲存（核心只讀）
type RedisProfileStore struct {
	client *redis.Client
}

// NewRedisProfileStore 創建 Redis 用戶資料儲存
func NewRedisProfileStore(client *redis.Client) *RedisProfileStore {
	return &RedisProfileStore{client: client}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// GetProfile 查用戶個人化資料，查無回傳 nil（非錯誤）
func (s *RedisProfileStore) GetProfile(ctx context.Context, userID string) (*common.UserProfile, error) {
	data, err := s.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile common.UserProfile
	if err := common.ParseJSONBytes(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// MemoryProfileStore 行程內用戶資料儲存，供未啟用 Redis 與測試使用
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]common.UserProfile
}

// NewMemoryProfileStore 創建行程內用戶資料儲存
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]common.UserProfile),
	}
}

// SetProfile 寫入用戶資料（測試準備用）
func (s *MemoryProfileStore) SetProfile(userID string, profile common.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = profile
}

// GetProfile 查用戶個人化資料，查無回傳 nil
func (s *MemoryProfileStore) GetProfile(ctx context.Context, userID string) (*common.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.profiles[userID]; ok {
		cp := profile
		return &cp, nil
	}
	return nil, nil
}
