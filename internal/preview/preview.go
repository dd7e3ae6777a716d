// Package preview opens rendered charts in the desktop image viewer.
package preview

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pkg/browser"
)

type Previewer struct {
	open func(path string) error
}

func New() *Previewer {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Previewer{open: browser.OpenFile}
}

// Preview opens each file with the platform's default handler.
func (p *Previewer) Preview(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.open(path); err != nil {
			return goerr.Wrap(err, "failed to open chart", goerr.V("path", path))
		}
		ctxlog.From(ctx).Debug("chart opened", "file", path)
	}
	return nil
}
