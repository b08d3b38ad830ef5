package store

import (
	"context"
	"testing"

	"recipe-chatbot/internal/pkg/common"
)

func TestMemoryRecipeStoreUpsertIsIdempotent(t *testing.T) {
	s := NewMemoryRecipeStore()
	ctx := context.Background()

	id1, err := s.UpsertDetectedRecipe(ctx, "Beef Stew", "user-1")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	id2, err := s.UpsertDetectedRecipe(ctx, "Beef Stew", "user-2")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("same name produced different ids: %q vs %q", id1, id2)
	}
	if id1 != "beef_stew" {
		t.Errorf("id = %q, want %q", id1, "beef_stew")
	}
}

func TestMemoryRecipeStoreLookup(t *testing.T) {
	s := NewMemoryRecipeStore()
	ctx := context.Background()

	id, err := s.UpsertDetectedRecipe(ctx, "Pad Thai", "user-1")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	byID, err := s.GetRecipeByID(ctx, id)
	if err != nil {
		t.Fatalf("GetRecipeByID failed: %v", err)
	}
	if byID == nil || byID.Name != "Pad Thai" {
		t.Fatalf("byID = %+v", byID)
	}

	byName, err := s.GetRecipeByName(ctx, "Pad Thai")
	if err != nil {
		t.Fatalf("GetRecipeByName failed: %v", err)
	}
	if byName == nil || byName.ID != id {
		t.Fatalf("byName = %+v", byName)
	}

	missing, err := s.GetRecipeByID(ctx, "never_detected")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown id, got %+v", missing)
	}
}

func TestMemoryRecipeStoreRejectsEmptySlug(t *testing.T) {
	s := NewMemoryRecipeStore()
	if _, err := s.UpsertDetectedRecipe(context.Background(), "!!!", "user-1"); err == nil {
		t.Error("expected error for name with no usable characters")
	}
}

func TestMemoryProfileStore(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	profile, err := s.GetProfile(ctx, "unknown")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil for unknown user, got %+v", profile)
	}

	s.SetProfile("user-1", common.UserProfile{IsVegan: true, Allergies: []string{"peanuts"}})
	profile, err = s.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile == nil || !profile.IsVegan {
		t.Fatalf("profile = %+v", profile)
	}
	if len(profile.Allergies) != 1 || profile.Allergies[0] != "peanuts" {
		t.Errorf("allergies = %v", profile.Allergies)
	}
}
