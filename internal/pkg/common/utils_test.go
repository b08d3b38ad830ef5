package common

import (
	"strings"
	"testing"
)

func TestSlugifyRecipeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple name",
			input: "Beef Stew",
			want:  "beef_stew",
		},
		{
			name:  "punctuation collapsed",
			input: "Korean-Style BBQ Beef Tacos!",
			want:  "korean_style_bbq_beef_tacos",
		},
		{
			name:  "digits kept after letters",
			input: "5-Minute Eggs 2.0",
			want:  "minute_eggs_2_0",
		},
		{
			name:  "deterministic for same name",
			input: "Pad Thai",
			want:  "pad_thai",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugifyRecipeName(tt.input); got != tt.want {
				t.Errorf("SlugifyRecipeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyRecipeNameLength(t *testing.T) {
	long := strings.Repeat("chicken ", 20)
	got := SlugifyRecipeName(long)
	if len(got) > 50 {
		t.Errorf("slug length = %d, want <= 50", len(got))
	}
	if strings.HasSuffix(got, "_") || strings.HasPrefix(got, "_") {
		t.Errorf("slug has dangling underscore: %q", got)
	}
}

func TestGenerateUUID(t *testing.T) {
	first := GenerateUUID()
	second := GenerateUUID()
	if len(first) != 36 {
		t.Errorf("uuid length = %d, want 36: %q", len(first), first)
	}
	if first == second {
		t.Errorf("consecutive uuids should differ, both %q", first)
	}
}
