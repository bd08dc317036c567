package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/services/menu"
	"github.com/asad/kitchenstate/internal/services/recipe"
)

// setupTestEnv points the CLI at a fresh file backend and quiet logging.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMenuCmd_ShowCreatesDefault(t *testing.T) {
	setupTestEnv(t)

	out, err := run(t, newMenuCmd(), "", "show")
	if err != nil {
		t.Fatalf("menu show: %v", err)
	}
	var data menu.Data
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("output is not a menu: %v\n%s", err, out)
	}
	if len(data.Dishes) != 2 {
		t.Errorf("dishes = %d, want 2", len(data.Dishes))
	}
}

func TestMenuCmd_SaveFromStdin(t *testing.T) {
	setupTestEnv(t)

	doc := `{"dishes":[{"id":5,"name":"Fried Rice","price":16,"image":"/static/dishes/chaofan.jpg"}]}`
	if _, err := run(t, newMenuCmd(), doc, "save", "-f", "-"); err != nil {
		t.Fatalf("menu save: %v", err)
	}

	out, err := run(t, newMenuCmd(), "", "show")
	if err != nil {
		t.Fatalf("menu show: %v", err)
	}
	if !strings.Contains(out, "Fried Rice") {
		t.Errorf("menu show output = %s", out)
	}
}

func TestOrderCmd_SaveFromFile(t *testing.T) {
	dir := setupTestEnv(t)

	path := filepath.Join(dir, "order.json")
	if err := os.WriteFile(path, []byte(`{"items":[{"id":1,"quantity":2}]}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := run(t, newOrderCmd(), "", "save", "--file", path); err != nil {
		t.Fatalf("order save: %v", err)
	}

	out, err := run(t, newOrderCmd(), "", "show")
	if err != nil {
		t.Fatalf("order show: %v", err)
	}
	if !strings.Contains(out, `"quantity": 2`) {
		t.Errorf("order show output = %s", out)
	}
}

func TestRecipeCmd_SaveGetList(t *testing.T) {
	setupTestEnv(t)

	if _, err := run(t, newRecipeCmd(), `{"items":[1,2]}`, "save", "--date", "2024-01-01", "-f", "-"); err != nil {
		t.Fatalf("recipe save: %v", err)
	}
	if _, err := run(t, newRecipeCmd(), `{"items":["soup"]}`, "save", "--date", "2024-01-03", "-f", "-"); err != nil {
		t.Fatalf("recipe save: %v", err)
	}

	out, err := run(t, newRecipeCmd(), "", "get", "--date", "2024-01-01")
	if err != nil {
		t.Fatalf("recipe get: %v", err)
	}
	var day recipe.Day
	if err := json.Unmarshal([]byte(out), &day); err != nil {
		t.Fatalf("output is not a recipe day: %v", err)
	}
	if len(day.Items) != 2 {
		t.Errorf("items = %s, want [1 2]", day.Items)
	}

	out, err = run(t, newRecipeCmd(), "", "list")
	if err != nil {
		t.Fatalf("recipe list: %v", err)
	}
	if out != "2024-01-01\n2024-01-03\n" {
		t.Errorf("recipe list = %q", out)
	}
}

func TestRecipeCmd_SaveRejectsInvalidInput(t *testing.T) {
	setupTestEnv(t)

	_, err := run(t, newRecipeCmd(), `{"items":"not-an-array"}`, "save", "--date", "d3", "-f", "-")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("recipe save error = %v, want ErrInvalidInput", err)
	}

	_, err = run(t, newRecipeCmd(), `{"items":[]}`, "save", "--date", "", "-f", "-")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("recipe save with empty date error = %v, want ErrInvalidInput", err)
	}

	out, err := run(t, newRecipeCmd(), "", "list")
	if err != nil {
		t.Fatalf("recipe list: %v", err)
	}
	if out != "" {
		t.Errorf("nothing should be stored, list = %q", out)
	}
}

func TestReadInput_RequiresFile(t *testing.T) {
	if _, err := readInput(newMenuCmd(), ""); err == nil {
		t.Error("readInput without a path should fail")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, rootCmd, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "kitchenstate version dev\n" {
		t.Errorf("version output = %q", out)
	}
}
