package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/driftimg/pkg/config"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(config.Reset)
	var out, errOut bytes.Buffer
	err = Run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}, {"--help"}, {"help"}} {
		out, _, err := run(t, args...)
		if err != nil {
			t.Fatalf("Run(%v): %v", args, err)
		}
		for _, want := range []string{"Commands:", "srcset", "blur", "render", "validate", "--log-file"} {
			if !strings.Contains(out, want) {
				t.Errorf("Run(%v) help missing %q", args, want)
			}
		}
	}

	out, _, err := run(t, "--version")
	if err != nil || !strings.Contains(out, "driftimg version "+Version) {
		t.Errorf("version output = %q, err = %v", out, err)
	}
}

func TestRunCommandHelp(t *testing.T) {
	out, _, err := run(t, "srcset", "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "driftimg srcset --src SRC") {
		t.Errorf("command help = %q", out)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	_, stderr, err := run(t, "resize")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(stderr, `unknown command "resize"`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunLogFileRequiresValue(t *testing.T) {
	if _, _, err := run(t, "srcset", "--log-file"); err == nil {
		t.Error("expected error for --log-file without a value")
	}
}

func TestParseSrcsetArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    SrcsetOptions
		wantErr bool
	}{
		{"flags", []string{"--src", "/a.jpg", "--width", "400", "--quality=60"}, SrcsetOptions{Src: "/a.jpg", Width: 400, Quality: 60}, false},
		{"bare source", []string{"/a.jpg", "--unoptimized"}, SrcsetOptions{Src: "/a.jpg", Unoptimized: true}, false},
		{"base", []string{"--src=/a.jpg", "--base", "https://cdn"}, SrcsetOptions{Src: "/a.jpg", BaseURL: "https://cdn"}, false},
		{"missing src", []string{"--width", "400"}, SrcsetOptions{}, true},
		{"bad width", []string{"--src", "/a.jpg", "--width", "wide"}, SrcsetOptions{}, true},
		{"bad quality", []string{"--src", "/a.jpg", "--quality", "0"}, SrcsetOptions{}, true},
		{"missing value", []string{"--src"}, SrcsetOptions{}, true},
		{"unknown", []string{"--src", "/a.jpg", "--fast"}, SrcsetOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSrcsetArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSrcsetCommand(t *testing.T) {
	out, _, err := run(t, "srcset", "--src", "img/a.jpg", "--width=400")
	if err != nil {
		t.Fatal(err)
	}
	want := "src:    img/a.jpg?w=400&q=75\nsrcset: img/a.jpg?w=640&q=75 640w, img/a.jpg?w=750&q=75 750w\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}

	out, _, err = run(t, "srcset", "/raw.svg", "--width", "400", "--unoptimized")
	if err != nil {
		t.Fatal(err)
	}
	if out != "src:    /raw.svg\n" {
		t.Errorf("unoptimized output = %q", out)
	}
}

func TestBlurCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "blur")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "data:image/jpeg;base64,") {
		t.Errorf("default blur = %.40q", out)
	}

	photo := filepath.Join(dir, "photo.png")
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			src.Set(x, y, color.RGBA{R: 200, G: uint8(x * 6), B: 40, A: 255})
		}
	}
	f, err := os.Create(photo)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	preview := filepath.Join(dir, "preview.png")
	out, _, err = run(t, "blur", photo, "--width", "10", "--preview", preview)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "data:image/png;base64,") {
		t.Errorf("file blur = %.40q", out)
	}
	pf, err := os.Open(preview)
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	defer pf.Close()
	cfg, _, err := image.DecodeConfig(pf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != previewWidth || cfg.Height != previewWidth/2 {
		t.Errorf("preview is %dx%d", cfg.Width, cfg.Height)
	}

	if _, _, err := run(t, "blur", filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}

const projectYAML = `
name: site
loader:
  quality: 60
images:
  - name: hero
    src: /hero.jpg
    alt: Hero
    width: 400
    height: 200
  - name: divider
    src: /divider.png
    alt: ""
    unoptimized: true
  - name: banner
    src: /banner.jpg
    fill: true
  - name: broken
    alt: nothing here
`

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.yaml")
	writeFile(t, path, projectYAML)

	out, _, err := run(t, "render", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<!-- hero -->\n<img alt=\"Hero\" src=\"/hero.jpg?w=400&amp;q=60\"",
		`<img alt="" src="/divider.png" loading="lazy"`,
		`data-nimg="fill"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandUnknownFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.yaml")
	writeFile(t, path, projectYAML)
	if _, _, err := run(t, "render", "--config", path, "--pretty"); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "images.yaml")
	writeFile(t, path, projectYAML)
	logFile := filepath.Join(dir, "logs", "driftimg.log")

	out, _, err := run(t, "--log-file", logFile, "validate", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "2 problem(s) in 4 image(s)") {
		t.Fatalf("err = %v\n%s", err, out)
	}
	for _, want := range []string{
		"hero\n",
		"divider\n",
		`banner: Image is missing required "alt" property`,
		`broken: Image is missing required "src" property`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
	if config.Get().EnableWarnings {
		t.Error("validate must restore the previous configuration")
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(logged), `"attribute":"alt"`) {
		t.Errorf("log file = %s", logged)
	}
}

func TestValidateCommandInvalidImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "images.yaml")
	writeFile(t, path, "name: site\nimages:\n  - name: odd\n    src: /a.jpg\n    alt: A\n    placeholder: sparkles\n")
	logFile := filepath.Join(dir, "driftimg.log")

	out, _, err := run(t, "--log-file", logFile, "validate", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "1 problem(s) in 1 image(s)") {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "odd:") {
		t.Errorf("validate output = %q", out)
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	for _, want := range []string{`"kind":"config"`, `"instance":"site/odd"`} {
		if !strings.Contains(string(logged), want) {
			t.Errorf("log file missing %s: %s", want, logged)
		}
	}
}

func TestValidateCommandClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.yaml")
	writeFile(t, path, "images:\n  - name: a\n    src: /a.jpg\n    alt: A\n")
	out, _, err := run(t, "validate", "--config", path)
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
}

func TestFlagValue(t *testing.T) {
	args := []string{"--name", "x", "--name=y", "--other"}
	i := 0
	if v, ok, err := flagValue(args, &i, "--name"); v != "x" || !ok || err != nil || i != 1 {
		t.Errorf("separate value: %q %v %v i=%d", v, ok, err, i)
	}
	i = 2
	if v, ok, _ := flagValue(args, &i, "--name"); v != "y" || !ok || i != 2 {
		t.Errorf("inline value: %q %v i=%d", v, ok, i)
	}
	i = 3
	if _, ok, _ := flagValue(args, &i, "--name"); ok {
		t.Error("--other matched --name")
	}
	if _, ok, err := flagValue([]string{"--name"}, new(int), "--name"); !ok || err == nil {
		t.Error("expected missing value error")
	}
}
