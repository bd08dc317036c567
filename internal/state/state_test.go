package state

import (
	"context"
	"testing"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/logging"
	"github.com/asad/kitchenstate/internal/services/recipe"
)

func TestOpen_FileBackendPersistsAcrossReopen(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendFile, DataDir: t.TempDir()}
	ctx := context.Background()

	st, err := Open(ctx, cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := st.Menu.Init(ctx); err != nil {
		t.Fatalf("Menu.Init() error = %v", err)
	}
	if err := st.Recipe.SaveByDate(ctx, "2024-01-01", recipe.Day{Items: nil}); err == nil {
		t.Fatal("SaveByDate with nil items should be rejected")
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	st, err = Open(ctx, cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer st.Close()

	raw, ok, err := st.Backend.GetString(ctx, "menuData")
	if err != nil || !ok || raw == "" {
		t.Errorf("menuData after reopen = %q, ok %v, err %v", raw, ok, err)
	}
	if _, ok, _ := st.Backend.GetString(ctx, "recipeData"); ok {
		t.Error("recipeData should not exist")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{StorageBackend: "floppy"}
	if _, err := Open(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Error("Open() with unknown backend should fail")
	}
}

func TestServices(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendMemory}
	st, err := Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()

	names := map[string]bool{}
	for _, svc := range st.Services() {
		names[svc.Name()] = true
	}
	for _, want := range []string{"menu", "order", "recipe"} {
		if !names[want] {
			t.Errorf("missing service %q", want)
		}
	}
	if names["static"] {
		t.Error("static service needs a DATA_DIR")
	}
}

func TestServices_WithAssets(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendMemory, DataDir: t.TempDir()}
	st, err := Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()

	if st.Assets == nil {
		t.Fatal("Assets should be set when DataDir is configured")
	}
	if len(st.Services()) != 4 {
		t.Errorf("Services() = %d, want 4", len(st.Services()))
	}
}
