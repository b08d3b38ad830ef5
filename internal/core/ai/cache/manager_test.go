package cache

import (
	"testing"

	"recipe-chatbot/internal/infrastructure/config"
)

func testConfig(enabled bool, maxSize int) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Enabled = enabled
	cfg.Cache.MaxSize = maxSize
	return cfg
}

func TestNewManagerDisabled(t *testing.T) {
	m := NewManager(testConfig(false, 100))
	if m != nil {
		t.Fatal("expected nil manager when cache disabled")
	}

	// nil 管理器所有操作都要安全
	if _, ok := m.Get("key"); ok {
		t.Error("nil manager Get should miss")
	}
	m.Set("key", "value")
	if _, ok := m.Get("key"); ok {
		t.Error("nil manager Set should be a no-op")
	}
	stats := m.GetStats()
	if stats["enabled"] != false {
		t.Errorf("stats = %v", stats)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close returned %v", err)
	}
}

func TestCacheGetSet(t *testing.T) {
	m := NewManager(testConfig(true, 100))
	if m == nil {
		t.Fatal("expected manager")
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	m.Set("k1", "v1")
	got, ok := m.Get("k1")
	if !ok || got != "v1" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	// 同鍵覆蓋
	m.Set("k1", "v2")
	got, _ = m.Get("k1")
	if got != "v2" {
		t.Errorf("overwrite failed, got %q", got)
	}

	stats := m.GetStats()
	if stats["size"] != 1 {
		t.Errorf("size = %v, want 1", stats["size"])
	}
	if stats["hits"].(int64) < 2 {
		t.Errorf("hits = %v", stats["hits"])
	}
}

func TestHashKeyDeterministic(t *testing.T) {
	a := HashKey("prompt", "user", "hello")
	b := HashKey("prompt", "user", "hello")
	if a != b {
		t.Error("same parts must produce the same key")
	}
	if a == HashKey("prompt", "user", "hello!") {
		t.Error("different parts must produce different keys")
	}
	// 邊界不可被拼接混淆
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Error("part boundaries must affect the key")
	}
}
