package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"

	"go.uber.org/zap"
)

// CacheManager 行程內快取：AI 回應與食譜內容共用
// 無淘汰、last-write-wins：條目一旦有驗證過的內容即視為不可變，
// 後寫者以更完整資料覆蓋前者是可接受的，併發寫入不需加鎖以外的協調
type CacheManager struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value      string
	createdAt  time.Time
	lastAccess time.Time
}

// cacheStats 緩存統計
type cacheStats struct {
	hits   int64
	misses int64
	writes int64
}

// NewManager 創建新的緩存管理器
func NewManager(cfg *config.Config) *CacheManager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &CacheManager{
		config: cfg,
		store:  make(map[string]cacheEntry),
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
	)

	return m
}

// Get 獲取緩存值
func (m *CacheManager) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}

	entry.lastAccess = time.Now()
	m.store[key] = entry
	m.stats.hits++
	common.LogCacheHit("memory", key)
	return entry.value, true
}

// Set 設置緩存值，同鍵覆蓋（last-write-wins）
func (m *CacheManager) Set(key, value string) {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.config.Cache.MaxSize {
		common.LogWarn("快取超過設定容量",
			zap.Int("目前容量", len(m.store)),
			zap.Int("設定容量", m.config.Cache.MaxSize),
		)
	}

	now := time.Now()
	m.store[key] = cacheEntry{
		value:      value,
		createdAt:  now,
		lastAccess: now,
	}
	m.stats.writes++
}

// HashKey 由任意字串組合出穩定快取鍵
func HashKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetStats 獲取緩存統計信息
func (m *CacheManager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"enabled":   true,
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"writes":    m.stats.writes,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉緩存管理器
func (m *CacheManager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
	)
	return nil
}
