package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hitoshi/emolens/internal/model"
)

func TestFileSessionSlot_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	slot := NewFileSessionSlot(path)

	saved := &model.Identity{
		ID:        "1",
		Email:     "user@example.com",
		IsAdmin:   false,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := slot.Save(context.Background(), saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := slot.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected restored identity")
	}
	if got.ID != saved.ID || got.Email != saved.Email || got.IsAdmin != saved.IsAdmin {
		t.Errorf("got %+v, want %+v", got, saved)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestFileSessionSlot_Load_MissingFileReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	slot := NewFileSessionSlot(path)

	got, err := slot.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for missing slot", got)
	}
}

func TestFileSessionSlot_Load_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	slot := NewFileSessionSlot(path)

	_, err := slot.Load(context.Background())
	if !errors.Is(err, ErrMalformedSlot) {
		t.Errorf("err = %v, want ErrMalformedSlot", err)
	}
}

func TestFileSessionSlot_Load_MissingRequiredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"id":"","email":""}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	slot := NewFileSessionSlot(path)

	_, err := slot.Load(context.Background())
	if !errors.Is(err, ErrMalformedSlot) {
		t.Errorf("err = %v, want ErrMalformedSlot", err)
	}
}

func TestFileSessionSlot_Save_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	slot := NewFileSessionSlot(path)

	first := &model.Identity{ID: "1", Email: "user@example.com"}
	second := &model.Identity{ID: "2", Email: "admin@example.com", IsAdmin: true}

	if err := slot.Save(context.Background(), first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := slot.Save(context.Background(), second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := slot.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "2" || !got.IsAdmin {
		t.Errorf("got %+v, want overwritten admin identity", got)
	}
}

func TestFileSessionSlot_Save_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	slot := NewFileSessionSlot(path)

	identity := &model.Identity{ID: "1", Email: "user@example.com"}
	if err := slot.Save(context.Background(), identity); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("slot file not created: %v", err)
	}
}

func TestFileSessionSlot_Clear_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	slot := NewFileSessionSlot(path)

	identity := &model.Identity{ID: "1", Email: "user@example.com"}
	if err := slot.Save(context.Background(), identity); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := slot.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, err := slot.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil after clear", got)
	}
}

func TestFileSessionSlot_Clear_MissingFileSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	slot := NewFileSessionSlot(path)

	if err := slot.Clear(context.Background()); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}
