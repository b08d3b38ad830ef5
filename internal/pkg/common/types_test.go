package common

import (
	"reflect"
	"testing"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{role: "assistant", want: "assistant"},
		{role: "Bot", want: "assistant"},
		{role: "AI", want: "assistant"},
		{role: "model", want: "assistant"},
		{role: "system", want: "system"},
		{role: "user", want: "user"},
		{role: "customer", want: "user"},
		{role: "", want: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := NormalizeRole(tt.role); got != tt.want {
				t.Errorf("NormalizeRole(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestTrimHistory(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "first"},
		{Role: "bot", Content: "second"},
		{Role: "user", Content: "   "},
		{Role: "user", Content: "third"},
		{Role: "assistant", Content: "fourth"},
	}

	got := TrimHistory(history, 3)
	want := []ChatMessage{
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
		{Role: "assistant", Content: "fourth"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTrimHistoryShorterThanLimit(t *testing.T) {
	history := []ChatMessage{{Role: "user", Content: "only"}}
	got := TrimHistory(history, 10)
	if len(got) != 1 || got[0].Content != "only" {
		t.Errorf("got %+v", got)
	}
}
