package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derez || len(cfg.Macros) != 0 || len(cfg.IncludePath) != 0 {
		t.Errorf("got %#v, want a zero-value RezConfig", cfg)
	}
}

func TestLoadDecodesAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rezfront.yaml")
	content := "derez: true\n" +
		"include_path: [\"inc\", \"vendor/inc\"]\n" +
		"sys_include_path: [\"/usr/include/Rez\"]\n" +
		"macros:\n" +
		"  DEBUG: \"1\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Derez {
		t.Error("got Derez=false, want true")
	}
	if len(cfg.IncludePath) != 2 || cfg.IncludePath[0] != "inc" {
		t.Errorf("got IncludePath %v", cfg.IncludePath)
	}
	if len(cfg.SysIncludePath) != 1 {
		t.Errorf("got SysIncludePath %v", cfg.SysIncludePath)
	}
	if cfg.Macros["DEBUG"] != "1" {
		t.Errorf("got Macros[DEBUG]=%q, want 1", cfg.Macros["DEBUG"])
	}
}

func TestMacroTokensSubLexesEachMacroValue(t *testing.T) {
	cfg := &RezConfig{Macros: map[string]string{"N": "3 + 4"}}
	toks := cfg.MacroTokens()
	repl, ok := toks["N"]
	if !ok || len(repl) != 3 {
		t.Fatalf("got %v, want 3 tokens for \"3 + 4\"", repl)
	}
}
