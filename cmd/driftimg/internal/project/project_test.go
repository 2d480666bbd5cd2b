package project

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/driftimg/pkg/config"
	"github.com/go-drift/driftimg/pkg/placeholder"
	"github.com/go-drift/driftimg/pkg/widgets"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/shop/site/v2\n\ngo 1.24\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "example.com/shop/site/v2" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.Name != "site" {
		t.Errorf("Name = %q, want site", r.Name)
	}
	if len(r.Images) != 0 {
		t.Errorf("Images = %v", r.Images)
	}
}

func TestResolveRequiresGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error without go.mod")
	}
}

func TestResolveFile(t *testing.T) {
	t.Cleanup(config.Reset)
	dir := t.TempDir()
	path := filepath.Join(dir, "images.yaml")
	writeFile(t, path, `
name: gallery
enableWarnings: true
loader:
  baseURL: https://cdn.example.com
  quality: 60
images:
  - name: hero
    src: /hero.jpg
    alt: Hero
    width: 400
    height: 200
    priority: true
  - src: /logo.svg
    unoptimized: true
`)

	r, err := ResolveFile(path)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	if r.Name != "gallery" || r.Root != dir {
		t.Errorf("Name=%q Root=%q", r.Name, r.Root)
	}
	if !r.Config.EnableWarnings {
		t.Error("enableWarnings not applied")
	}
	if len(r.Images) != 2 || r.Images[1].Name != "image[1]" {
		t.Fatalf("Images = %+v", r.Images)
	}
	if r.Images[1].Alt != nil {
		t.Error("omitted alt should stay nil")
	}

	img, err := r.Widget(r.Images[0])
	if err != nil {
		t.Fatalf("Widget: %v", err)
	}
	attrs := img.Render()
	if attrs.Src != "https://cdn.example.com/hero.jpg?w=400&q=60" {
		t.Errorf("Src = %q", attrs.Src)
	}
	if attrs.Loading != widgets.LoadingEager || attrs.Alt != "Hero" {
		t.Errorf("loading=%q alt=%q", attrs.Loading, attrs.Alt)
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "images: [", "failed to parse"},
		{"quality", "loader:\n  quality: 101\n", "loader.quality"},
		{"duplicate", "images:\n  - name: a\n  - name: a\n", "duplicate image name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := ResolveFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestWidgetPlaceholder(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := range 16 {
		for x := range 32 {
			src.Set(x, y, color.RGBA{R: uint8(x * 8), G: 80, B: 160, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "photo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r := &Resolved{Root: dir}
	tests := []struct {
		name     string
		cfg      ImageConfig
		wantMode placeholder.Mode
		wantData string
		wantErr  bool
	}{
		{"default empty", ImageConfig{Name: "a"}, placeholder.ModeEmpty, "", false},
		{"blur", ImageConfig{Name: "a", Placeholder: "blur"}, placeholder.ModeBlur, "", false},
		{"inline", ImageConfig{Name: "a", Placeholder: "data:image/png;base64,AA"}, placeholder.ModeBlur, "data:image/png;base64,AA", false},
		{"file", ImageConfig{Name: "a", BlurFile: "photo.png"}, placeholder.ModeBlur, "data:image/png;base64,", false},
		{"unknown", ImageConfig{Name: "a", Placeholder: "fuzzy"}, placeholder.ModeEmpty, "", true},
		{"missing file", ImageConfig{Name: "a", BlurFile: "nope.png"}, placeholder.ModeEmpty, "", true},
		{"bad loading", ImageConfig{Name: "a", Loading: "soon"}, placeholder.ModeEmpty, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Widget(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if img.Placeholder != tt.wantMode {
				t.Errorf("mode = %v, want %v", img.Placeholder, tt.wantMode)
			}
			if !strings.HasPrefix(img.BlurDataURL, tt.wantData) {
				t.Errorf("BlurDataURL = %.40q, want prefix %q", img.BlurDataURL, tt.wantData)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	tests := []struct {
		modulePath string
		dir        string
		want       string
	}{
		{"github.com/acme/web", "/tmp/x", "web"},
		{"github.com/acme/web/v3", "/tmp/x", "web"},
		{"", "/tmp/site", "site"},
		{"", "/", "images"},
	}
	for _, tt := range tests {
		if got := defaultName(tt.modulePath, tt.dir); got != tt.want {
			t.Errorf("defaultName(%q, %q) = %q, want %q", tt.modulePath, tt.dir, got, tt.want)
		}
	}
}
