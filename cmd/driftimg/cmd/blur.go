package cmd

import (
	"fmt"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/go-drift/driftimg/pkg/placeholder"
)

// previewWidth is the width of the PNG written by --preview.
const previewWidth = 320

func init() {
	RegisterCommand(&Command{
		Name:  "blur",
		Short: "Print a blur placeholder data URL for a local image",
		Long: `Downscale and blur a local image (PNG, JPEG, GIF or WebP) and print
the result as a data URL, ready to use as an image's BlurDataURL.

Without a file, prints the default gray gradient placeholder.

Usage:
  driftimg blur photo.jpg
  driftimg blur photo.jpg --width 16 --preview preview.png`,
		Usage: "driftimg blur [FILE] [--width N] [--preview OUT.png]",
		Run:   runBlur,
	})
}

// BlurOptions are the parsed flags of the blur command.
type BlurOptions struct {
	File    string
	Width   int
	Preview string
}

func parseBlurArgs(args []string) (BlurOptions, error) {
	opts := BlurOptions{Width: placeholder.DefaultSize}
	for i := 0; i < len(args); i++ {
		if v, ok, err := flagValue(args, &i, "--width"); ok {
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return opts, fmt.Errorf("--width must be a positive integer (got %q)", v)
			}
			opts.Width = n
			continue
		}
		if v, ok, err := flagValue(args, &i, "--preview"); ok {
			if err != nil {
				return opts, err
			}
			opts.Preview = v
			continue
		}
		if opts.File == "" && len(args[i]) > 0 && args[i][0] != '-' {
			opts.File = args[i]
			continue
		}
		return opts, fmt.Errorf("unknown flag: %s", args[i])
	}
	return opts, nil
}

func runBlur(env *Env, args []string) error {
	opts, err := parseBlurArgs(args)
	if err != nil {
		return err
	}

	var data string
	if opts.File == "" {
		data = placeholder.DefaultGenerator(opts.Width, opts.Width)
		if data == "" {
			return fmt.Errorf("failed to generate placeholder")
		}
	} else {
		data, err = placeholder.FromFile(opts.File, opts.Width)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(env.Stdout, data)

	if opts.Preview == "" {
		return nil
	}
	small, err := placeholder.DecodeDataURL(data)
	if err != nil {
		return err
	}
	b := small.Bounds()
	height := max(1, previewWidth*b.Dy()/b.Dx())
	preview, err := placeholder.Preview(data, previewWidth, height)
	if err != nil {
		return err
	}
	if err := imaging.Save(preview, opts.Preview); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
