// Package project resolves the optional driftimg.yaml project file that
// lists the images the CLI renders and validates.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/driftimg/pkg/config"
	"github.com/go-drift/driftimg/pkg/loader"
	"github.com/go-drift/driftimg/pkg/placeholder"
	"github.com/go-drift/driftimg/pkg/widgets"
)

// FileName is the project file looked up next to go.mod.
const FileName = "driftimg.yaml"

// File represents driftimg.yaml.
type File struct {
	Name           string        `yaml:"name,omitempty"`
	EnableWarnings *bool         `yaml:"enableWarnings,omitempty"`
	Loader         LoaderConfig  `yaml:"loader"`
	Images         []ImageConfig `yaml:"images"`
}

// LoaderConfig configures the URL transform shared by all images.
type LoaderConfig struct {
	BaseURL string `yaml:"baseURL,omitempty"`
	Quality int    `yaml:"quality,omitempty"`
}

// ImageConfig is one image entry.
type ImageConfig struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
	// Alt is a pointer so that an omitted alt can be told apart from an
	// intentionally empty one.
	Alt    *string `yaml:"alt,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Fill   bool    `yaml:"fill,omitempty"`
	// Quality overrides LoaderConfig.Quality.
	Quality  int    `yaml:"quality,omitempty"`
	Priority bool   `yaml:"priority,omitempty"`
	Loading  string `yaml:"loading,omitempty"`
	// Placeholder is "empty", "blur" or an inline data URL.
	Placeholder string `yaml:"placeholder,omitempty"`
	// BlurFile is a local image (relative to the project root) to derive
	// the blur payload from.
	BlurFile    string            `yaml:"blurFile,omitempty"`
	Unoptimized bool              `yaml:"unoptimized,omitempty"`
	Sizes       string            `yaml:"sizes,omitempty"`
	Class       string            `yaml:"class,omitempty"`
	Attrs       map[string]string `yaml:"attrs,omitempty"`
}

// Resolved contains resolved project values.
type Resolved struct {
	Root       string
	ModulePath string
	Name       string
	Config     config.Config
	Loader     LoaderConfig
	Images     []ImageConfig
}

// LoadOptional reads driftimg.yaml from dir if present.
func LoadOptional(dir string) (*File, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads a project file. A missing file yields an empty project.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &f, nil
}

// Resolve loads driftimg.yaml (if present) from the module rooted at dir and
// resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}
	f, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, modulePath, f)
}

// ResolveFile resolves an explicit project file. The project root is the
// file's directory; go.mod is optional there.
func ResolveFile(path string) (*Resolved, error) {
	dir := filepath.Dir(path)
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	modulePath, _ := modulePath(dir)
	return resolve(dir, modulePath, f)
}

func resolve(dir, modulePath string, f *File) (*Resolved, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = defaultName(modulePath, dir)
	}

	cfg := config.Get()
	if f.EnableWarnings != nil {
		cfg.EnableWarnings = *f.EnableWarnings
	}

	if f.Loader.Quality < 0 || f.Loader.Quality > 100 {
		return nil, fmt.Errorf("loader.quality must be between 1 and 100 (got %d)", f.Loader.Quality)
	}

	seen := make(map[string]bool, len(f.Images))
	for i, img := range f.Images {
		if img.Name == "" {
			f.Images[i].Name = fmt.Sprintf("image[%d]", i)
		}
		if seen[f.Images[i].Name] {
			return nil, fmt.Errorf("duplicate image name %q", f.Images[i].Name)
		}
		seen[f.Images[i].Name] = true
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Name:       name,
		Config:     cfg,
		Loader:     f.Loader,
		Images:     f.Images,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// URLLoader returns the URL transform for the project.
func (r *Resolved) URLLoader() loader.Loader {
	if r.Loader.BaseURL == "" {
		return loader.DefaultLoader
	}
	return loader.BaseURLLoader(r.Loader.BaseURL, loader.DefaultLoader)
}

// Widget builds the image described by c.
func (r *Resolved) Widget(c ImageConfig) (widgets.Image, error) {
	mode, explicit, err := placeholder.ParseMode(c.Placeholder)
	if err != nil {
		return widgets.Image{}, fmt.Errorf("%s: %w", c.Name, err)
	}

	if c.BlurFile != "" {
		path := c.BlurFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.Root, path)
		}
		data, err := placeholder.FromFile(path, placeholder.DefaultSize)
		if err != nil {
			return widgets.Image{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		mode, explicit = placeholder.ModeBlur, data
	}

	var loading widgets.LoadingMode
	switch c.Loading {
	case "":
	case string(widgets.LoadingLazy), string(widgets.LoadingEager):
		loading = widgets.LoadingMode(c.Loading)
	default:
		return widgets.Image{}, fmt.Errorf("%s: unknown loading mode %q (use lazy or eager)", c.Name, c.Loading)
	}

	quality := c.Quality
	if quality == 0 {
		quality = r.Loader.Quality
	}

	img := widgets.Image{
		Src:         c.Src,
		Width:       c.Width,
		Height:      c.Height,
		Fill:        c.Fill,
		Loader:      r.URLLoader(),
		Quality:     quality,
		Priority:    c.Priority,
		Loading:     loading,
		Placeholder: mode,
		BlurDataURL: explicit,
		Unoptimized: c.Unoptimized,
		Sizes:       c.Sizes,
		ClassName:   c.Class,
		Attrs:       c.Attrs,
	}
	if c.Alt != nil {
		img.Alt = *c.Alt
	}
	return img, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "images"
	}
	return base
}
