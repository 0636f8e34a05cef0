package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoad(t *testing.T) {
	t.Run("parses yaml", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		yml := "root: /srv/app/templates\next: .html\nignore:\n  - node_modules\n  - .git\n"
		if err := afero.WriteFile(fsys, "themepatch.yml", []byte(yml), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(fsys, "themepatch.yml", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != "/srv/app/templates" {
			t.Errorf("unexpected root: %s", cfg.Root)
		}
		if cfg.Ext != ".html" {
			t.Errorf("unexpected ext: %s", cfg.Ext)
		}
		if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "node_modules" {
			t.Errorf("unexpected ignore list: %v", cfg.Ignore)
		}
	})

	t.Run("missing default file yields defaults", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		cfg, err := Load(fsys, DefaultFile, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Ext != DefaultExt {
			t.Errorf("expected default ext, got %s", cfg.Ext)
		}
		if cfg.Root != "" {
			t.Errorf("expected empty root, got %s", cfg.Root)
		}
	})

	t.Run("missing explicit file errors", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if _, err := Load(fsys, "custom.yml", true); err == nil {
			t.Error("expected error for missing explicit config")
		}
	})

	t.Run("normalizes extension", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "themepatch.yml", []byte("root: /tmp\next: html\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(fsys, "themepatch.yml", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Ext != ".html" {
			t.Errorf("expected .html, got %s", cfg.Ext)
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "themepatch.yml", []byte("root: [\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(fsys, "themepatch.yml", false); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts a directory root", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll("templates", 0755); err != nil {
			t.Fatal(err)
		}
		cfg := &Config{Root: "templates", Ext: ".html"}
		if err := cfg.Validate(fsys); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects empty root", func(t *testing.T) {
		cfg := &Config{Ext: ".html"}
		if err := cfg.Validate(afero.NewMemMapFs()); err == nil {
			t.Error("expected error for empty root")
		}
	})

	t.Run("rejects missing root", func(t *testing.T) {
		cfg := &Config{Root: "nope", Ext: ".html"}
		if err := cfg.Validate(afero.NewMemMapFs()); err == nil {
			t.Error("expected error for missing root")
		}
	})

	t.Run("rejects file root", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "afile", []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg := &Config{Root: "afile", Ext: ".html"}
		if err := cfg.Validate(fsys); err == nil {
			t.Error("expected error for non-directory root")
		}
	})
}
