package cmd

import (
	"fmt"
	"sync"

	"github.com/fatih/color"

	"github.com/go-drift/driftimg/pkg/config"
	"github.com/go-drift/driftimg/pkg/errors"
	"github.com/go-drift/driftimg/pkg/lifecycle"
	"github.com/go-drift/driftimg/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Report missing src or alt on configured images",
		Long: `Mount every image listed in the project file against its rendered
attributes and report developer diagnostics: a missing src, or an alt
attribute that was omitted entirely. An empty alt ("") marks a decorative
image and is valid.

Diagnostics are reported regardless of enableWarnings.

Usage:
  driftimg validate
  driftimg validate --config site/images.yaml`,
		Usage: "driftimg validate [--config FILE]",
		Run:   runValidate,
	})
}

// collector records diagnostics and forwards everything to next.
type collector struct {
	next errors.ErrorHandler

	mu    sync.Mutex
	diags []*errors.Diagnostic
}

func (c *collector) HandleError(err *errors.ImageError) { c.next.HandleError(err) }

func (c *collector) HandlePanic(err *errors.PanicError) { c.next.HandlePanic(err) }

func (c *collector) HandleDiagnostic(d *errors.Diagnostic) {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
	c.next.HandleDiagnostic(d)
}

func (c *collector) take() []*errors.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.diags
	c.diags = nil
	return out
}

func runValidate(env *Env, args []string) error {
	r, rest, err := loadProject(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unknown flag: %s", rest[0])
	}

	cfg := r.Config
	cfg.EnableWarnings = true
	prevCfg := config.Get()
	config.Configure(cfg)
	defer config.Configure(prevCfg)

	prev := errors.DefaultHandler
	col := &collector{next: prev}
	errors.SetHandler(col)
	defer errors.SetHandler(prev)

	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	problems := 0
	for _, c := range r.Images {
		id := r.Name + "/" + c.Name
		img, err := r.Widget(c)
		if err != nil {
			errors.Report(&errors.ImageError{
				Op:       "project.Widget",
				Kind:     errors.KindConfig,
				Err:      err,
				Src:      c.Src,
				Instance: id,
			})
			fail.Fprint(env.Stdout, "error   ")
			fmt.Fprintln(env.Stdout, err)
			problems++
			continue
		}

		el := widgets.NewStaticElement(img.Render())
		if c.Alt == nil {
			el.RemoveAttr("alt")
		}
		ctrl := lifecycle.NewController(lifecycle.WithID(id))
		ctrl.Attach(el)
		ctrl.Dispose()

		diags := col.take()
		if len(diags) == 0 {
			ok.Fprint(env.Stdout, "ok      ")
			fmt.Fprintln(env.Stdout, c.Name)
			continue
		}
		for _, d := range diags {
			warn.Fprint(env.Stdout, "warning ")
			fmt.Fprintf(env.Stdout, "%s: %s ", c.Name, d.Message)
			dim.Fprintf(env.Stdout, "[%s]\n", d.Attribute)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) in %d image(s)", problems, len(r.Images))
	}
	return nil
}
