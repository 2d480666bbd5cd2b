package cmd

import (
	"fmt"

	"github.com/go-drift/driftimg/cmd/driftimg/internal/project"
	"github.com/go-drift/driftimg/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render <img> markup for the images in driftimg.yaml",
		Long: `Render the <img> element of every image listed in the project file.

The project file defaults to driftimg.yaml next to the module's go.mod.

Usage:
  driftimg render
  driftimg render --config site/images.yaml`,
		Usage: "driftimg render [--config FILE]",
		Run:   runRender,
	})
}

// loadProject resolves the project from --config, or from driftimg.yaml in
// the enclosing Go module. It returns the remaining arguments.
func loadProject(args []string) (*project.Resolved, []string, error) {
	var path string
	var rest []string
	for i := 0; i < len(args); i++ {
		v, ok, err := flagValue(args, &i, "--config")
		if err != nil {
			return nil, nil, err
		}
		if ok {
			path = v
			continue
		}
		rest = append(rest, args[i])
	}

	var (
		r   *project.Resolved
		err error
	)
	if path != "" {
		r, err = project.ResolveFile(path)
	} else {
		root, rootErr := project.FindProjectRoot()
		if rootErr != nil {
			return nil, nil, fmt.Errorf("not in a Go module and no --config given")
		}
		r, err = project.Resolve(root)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return r, rest, nil
}

func runRender(env *Env, args []string) error {
	r, rest, err := loadProject(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unknown flag: %s", rest[0])
	}
	config.Configure(r.Config)

	if len(r.Images) == 0 {
		fmt.Fprintf(env.Stderr, "No images configured in %s\n", project.FileName)
		return nil
	}
	for _, c := range r.Images {
		img, err := r.Widget(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "<!-- %s -->\n%s\n", c.Name, img.Render().HTML())
	}
	return nil
}
