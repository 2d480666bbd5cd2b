package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/driftimg/pkg/loader"
)

func init() {
	RegisterCommand(&Command{
		Name:  "srcset",
		Short: "Print the candidate URLs for an image",
		Long: `Print the primary URL and the responsive srcset for an image.

Candidates are the standard breakpoints up to twice the requested width.
Without --width only the primary URL at the default width is printed.

Usage:
  driftimg srcset --src /photos/a.jpg --width 400
  driftimg srcset --src /a.jpg --width 400 --base https://cdn.example.com`,
		Usage: "driftimg srcset --src SRC [--width N] [--quality Q] [--base URL] [--unoptimized]",
		Run:   runSrcset,
	})
}

// SrcsetOptions are the parsed flags of the srcset command.
type SrcsetOptions struct {
	Src         string
	Width       int
	Quality     int
	BaseURL     string
	Unoptimized bool
}

func parseSrcsetArgs(args []string) (SrcsetOptions, error) {
	var opts SrcsetOptions
	for i := 0; i < len(args); i++ {
		if args[i] == "--unoptimized" {
			opts.Unoptimized = true
			continue
		}
		if v, ok, err := flagValue(args, &i, "--src"); ok {
			if err != nil {
				return opts, err
			}
			opts.Src = v
			continue
		}
		if v, ok, err := flagValue(args, &i, "--base"); ok {
			if err != nil {
				return opts, err
			}
			opts.BaseURL = v
			continue
		}
		if v, ok, err := flagValue(args, &i, "--width"); ok {
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return opts, fmt.Errorf("--width must be a non-negative integer (got %q)", v)
			}
			opts.Width = n
			continue
		}
		if v, ok, err := flagValue(args, &i, "--quality"); ok {
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 100 {
				return opts, fmt.Errorf("--quality must be between 1 and 100 (got %q)", v)
			}
			opts.Quality = n
			continue
		}
		// a bare argument is the source
		if opts.Src == "" && len(args[i]) > 0 && args[i][0] != '-' {
			opts.Src = args[i]
			continue
		}
		return opts, fmt.Errorf("unknown flag: %s", args[i])
	}
	if opts.Src == "" {
		return opts, fmt.Errorf("--src is required\n\nUsage: driftimg srcset --src SRC [--width N]")
	}
	return opts, nil
}

func runSrcset(env *Env, args []string) error {
	opts, err := parseSrcsetArgs(args)
	if err != nil {
		return err
	}

	fn := loader.DefaultLoader
	if opts.BaseURL != "" {
		fn = loader.BaseURLLoader(opts.BaseURL, loader.DefaultLoader)
	}
	set := loader.Generate(loader.Request{
		Src:         opts.Src,
		Width:       opts.Width,
		Quality:     opts.Quality,
		Unoptimized: opts.Unoptimized,
	}, fn)

	fmt.Fprintf(env.Stdout, "src:    %s\n", set.PrimaryURL)
	if srcset := set.SrcSet(); srcset != "" {
		fmt.Fprintf(env.Stdout, "srcset: %s\n", srcset)
	}
	return nil
}
