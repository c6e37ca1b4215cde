package builtin

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/config"
)

func loadedConfig(t *testing.T) (*config.Loader, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewLoader("bloodline-test", config.WithConfigFile(path))
	if _, err := loader.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return loader, path
}

func runConfig(t *testing.T, loader *config.Loader, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewConfigCommand(&ConfigOptions{Loader: loader, Output: out})
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestNewConfigCommand(t *testing.T) {
	loader, _ := loadedConfig(t)
	cmd := NewConfigCommand(&ConfigOptions{Loader: loader})

	want := map[string]bool{"show": false, "get": false, "set": false, "unset": false, "path": false}
	for _, sub := range cmd.Commands() {
		want[sub.Name()] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestConfigShowAndGet(t *testing.T) {
	loader, path := loadedConfig(t)

	out, err := runConfig(t, loader, "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "base_url: http://localhost:3000/api") {
		t.Errorf("unexpected show output:\n%s", out)
	}

	out, err = runConfig(t, loader, "get", "ui.theme")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if strings.TrimSpace(out) != "terminal" {
		t.Errorf("expected terminal, got %q", out)
	}

	if _, err := runConfig(t, loader, "get", "nope"); err == nil {
		t.Error("expected error for unknown key")
	}

	out, err = runConfig(t, loader, "path")
	if err != nil {
		t.Fatalf("path failed: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("expected %s, got %q", path, out)
	}
}

func TestConfigSetAndUnset(t *testing.T) {
	loader, path := loadedConfig(t)

	if _, err := runConfig(t, loader, "set", "ui.theme", "htb"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := runConfig(t, loader, "set", "history.persist", "false"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(raw), "theme: htb") || !strings.Contains(string(raw), "persist: false") {
		t.Errorf("unexpected config file:\n%s", raw)
	}

	reloaded := config.NewLoader("bloodline-test", config.WithConfigFile(path))
	cfg, err := reloaded.Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg.UI.Theme != "htb" || cfg.History.Persist {
		t.Errorf("settings not applied: %+v %+v", cfg.UI, cfg.History)
	}

	if _, err := runConfig(t, loader, "unset", "ui.theme"); err != nil {
		t.Fatalf("unset failed: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if strings.Contains(string(raw), "theme") {
		t.Errorf("theme still set:\n%s", raw)
	}

	if _, err := runConfig(t, loader, "unset", "ui.theme"); err == nil {
		t.Error("expected error unsetting a missing key")
	}
}

func TestConfigSet_Rejects(t *testing.T) {
	loader, path := loadedConfig(t)

	if _, err := runConfig(t, loader, "set", "ui.colour", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := runConfig(t, loader, "set", "ui.theme", "solarized"); err == nil {
		t.Error("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected values must not create the config file")
	}
}

func TestNestedValues(t *testing.T) {
	data := map[string]any{}
	setNestedValue(data, []string{"a", "b", "c"}, 1)
	setNestedValue(data, []string{"a", "d"}, "x")

	if !unsetNestedValue(data, []string{"a", "b", "c"}) {
		t.Fatal("expected removal")
	}
	a := data["a"].(map[string]any)
	if _, ok := a["b"]; ok {
		t.Error("expected empty section to be pruned")
	}
	if a["d"] != "x" {
		t.Error("sibling value lost")
	}
	if unsetNestedValue(data, []string{"a", "zz"}) {
		t.Error("expected no removal")
	}
}

func TestParseValue(t *testing.T) {
	if parseValue("true") != true {
		t.Error("expected bool")
	}
	if parseValue("500") != 500 {
		t.Error("expected int")
	}
	if parseValue("30s") != "30s" {
		t.Error("expected string")
	}
}
