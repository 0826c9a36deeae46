package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadMenu(t *testing.T) {
	path := writeSeed(t, `[
		{"id":1,"name":"饺子","price":"18.00","stock":4},
		{"id":2,"name":"汤","price":6.5,"description":"例汤","stock":0,"is_available":false}
	]`)

	items, err := LoadMenu(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].IsAvailable || items[0].Stock != 4 || !items[0].Price.Equal(decimal.RequireFromString("18")) {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].IsAvailable || items[1].Description != "例汤" || !items[1].Price.Equal(decimal.RequireFromString("6.5")) {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestLoadMenuEmptyPath(t *testing.T) {
	items, err := LoadMenu("")
	if err != nil || items != nil {
		t.Fatalf("expected no items, got %v err=%v", items, err)
	}
}

func TestLoadMenuErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":      `{"id":1}`,
		"zero id":        `[{"id":0,"name":"x","price":1,"stock":1}]`,
		"negative stock": `[{"id":1,"name":"x","price":1,"stock":-1}]`,
		"negative price": `[{"id":1,"name":"x","price":-1,"stock":1}]`,
		"missing name":   `[{"id":1,"price":1,"stock":1}]`,
		"duplicate":      `[{"id":1,"name":"x","price":1,"stock":1},{"id":1,"name":"y","price":1,"stock":1}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadMenu(writeSeed(t, content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := LoadMenu(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
