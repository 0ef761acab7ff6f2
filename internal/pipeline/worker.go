package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pagetoc/internal/page"
	"github.com/dgallion1/pagetoc/internal/toc"
)

// Worker renders a single job.
type Worker struct {
	opts page.Options
	log  *slog.Logger
}

func NewWorker(opts page.Options, log *slog.Logger) *Worker {
	return &Worker{opts: opts, log: log}
}

// Process loads the job's file, runs the toc pass and stores the result.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	job.SetStatus(StatusLoading, "loading")
	doc, err := page.Load(job.Filename, job.FileData(), w.opts)
	if err != nil {
		log.Error("load failed", "error", err)
		job.Fail("loading", err)
		return
	}

	job.SetStatus(StatusRendering, "rendering")
	res := toc.Build(doc, w.opts.TOC)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		log.Error("render failed", "error", err)
		job.Fail("rendering", fmt.Errorf("render html: %w", err))
		return
	}

	sections := []*toc.Section{}
	if res.Tree != nil {
		sections = res.Tree.Sections()
	}
	job.Complete(buf.Bytes(), res.Rendered, sections)

	if !res.Rendered {
		log.Info("no toc container, page left as is")
		return
	}
	log.Info("job completed", "sections", res.Tree.Len(), "bytes", buf.Len())
}
