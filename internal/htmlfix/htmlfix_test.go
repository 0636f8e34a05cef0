package htmlfix

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const include = `<div th:replace="~{fragments/theme :: themeResources}"></div>`

func TestBroken(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"unix adjacency", include + "\n<script>var x;</script>", true},
		{"windows adjacency", include + "\r\n<script>var x;</script>", true},
		{"properly indented", include + "\n    <script>var x;</script>", false},
		{"no script after include", include + "\n<div></div>", false},
		{"no include at all", "<script>var x;</script>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Broken(tt.content); got != tt.want {
				t.Errorf("Broken(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestRepair(t *testing.T) {
	t.Run("re-indents the script tag", func(t *testing.T) {
		in := "<head>\n    " + include + "\n<script src=\"app.js\"></script>\n</head>"
		want := "<head>\n    " + include + "\n    <script src=\"app.js\"></script>\n</head>"
		if got := Repair(in); got != want {
			t.Errorf("Repair() = %q, want %q", got, want)
		}
	})

	t.Run("collapses stray blank lines", func(t *testing.T) {
		in := include + "\n\n<script>x</script>"
		want := include + "\n    <script>x</script>"
		if got := Repair(in); got != want {
			t.Errorf("Repair() = %q, want %q", got, want)
		}
	})
}

func TestFile(t *testing.T) {
	t.Run("fixes broken file in place", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		content := "<head>\n    " + include + "\n<script>x</script>\n</head>"
		if err := afero.WriteFile(fsys, "page.html", []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		fixed, err := File(fsys, "page.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fixed {
			t.Fatal("expected file to be fixed")
		}

		got, _ := afero.ReadFile(fsys, "page.html")
		if !strings.Contains(string(got), include+"\n    <script>") {
			t.Errorf("script tag not re-indented: %q", got)
		}
	})

	t.Run("healthy file untouched byte-for-byte", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		content := "<head>\n    " + include + "\n    <script>x</script>\n</head>"
		if err := afero.WriteFile(fsys, "page.html", []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		fixed, err := File(fsys, "page.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fixed {
			t.Error("expected no fix for healthy file")
		}

		got, _ := afero.ReadFile(fsys, "page.html")
		if string(got) != content {
			t.Error("healthy file was modified")
		}
	})

	t.Run("fixing is idempotent", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		content := include + "\n<script>x</script>"
		if err := afero.WriteFile(fsys, "page.html", []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		if fixed, _ := File(fsys, "page.html"); !fixed {
			t.Fatal("expected first pass to fix")
		}
		if fixed, _ := File(fsys, "page.html"); fixed {
			t.Error("expected second pass to be a no-op")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if _, err := File(fsys, "missing.html"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestPreview(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := include + "\n<script>x</script>"
	if err := afero.WriteFile(fsys, "page.html", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	old, repaired, fixed, err := Preview(fsys, "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fixed {
		t.Fatal("expected a planned fix")
	}
	if old == repaired {
		t.Error("expected repaired content to differ")
	}

	got, _ := afero.ReadFile(fsys, "page.html")
	if string(got) != content {
		t.Error("Preview modified the file")
	}
}
