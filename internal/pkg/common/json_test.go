package common

import "testing"

type samplePayload struct {
	Title    string `json:"title"`
	Servings string `json:"servings"`
}

func TestSafeParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    samplePayload
		wantErr bool
	}{
		{
			name: "valid json",
			raw:  `{"title": "Beef Stew", "servings": "4"}`,
			want: samplePayload{Title: "Beef Stew", Servings: "4"},
		},
		{
			name: "trailing comma repaired",
			raw:  `{"title": "Beef Stew", "servings": "4",}`,
			want: samplePayload{Title: "Beef Stew", Servings: "4"},
		},
		{
			name: "unquoted keys repaired",
			raw:  `{title: "Beef Stew", servings: "4"}`,
			want: samplePayload{Title: "Beef Stew", Servings: "4"},
		},
		{
			name:    "empty input",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "unrecoverable input",
			raw:     `{"title": }`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got samplePayload
			err := SafeParseJSON(tt.raw, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripTrailingCommas(t *testing.T) {
	got := StripTrailingCommas(`{"a": [1, 2,], "b": 3,}`)
	want := `{"a": [1, 2], "b": 3}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	got := QuoteJSONKeys(`{title: "x", nested: {name: "y"}}`)
	want := `{"title": "x", "nested": {"name": "y"}}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseJSONBytes(t *testing.T) {
	var got samplePayload
	if err := ParseJSONBytes([]byte(`{"title": "Pad Thai", "servings": "2"}`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Pad Thai" || got.Servings != "2" {
		t.Errorf("got %+v", got)
	}

	if err := ParseJSONBytes([]byte(`{"title": }`), &got); err == nil {
		t.Error("expected error for malformed json")
	}
}
