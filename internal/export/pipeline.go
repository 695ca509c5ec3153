package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultSettleDelay is the fixed wait after fonts are ready and before measuring.
const DefaultSettleDelay = 250 * time.Millisecond

// contentSelector is the root element of the standalone document.
const contentSelector = "#pdf-resume"

// Pipeline renders records into export files through a Target.
// Concurrent exports of identical input share one render.
type Pipeline struct {
	engine *rendering.Engine
	target Target
	logger *logging.Logger
	settle time.Duration
	group  singleflight.Group
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d >= 0 {
			p.settle = d
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *logging.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a pipeline that renders with engine and captures through target.
func NewPipeline(engine *rendering.Engine, target Target, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		engine: engine,
		target: target,
		logger: logging.Nop(),
		settle: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Export produces the PDF (or PNG pages) for rec.
//
// A record without a full name fails with *PreconditionError before anything is opened.
// Failures after that are *PipelineError carrying the failing stage and, when the document
// could be built, a print fallback document.
func (p *Pipeline) Export(ctx context.Context, rec *types.ResumeRecord, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if opts.Format != FormatPDF && opts.Format != FormatPNG {
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if rec == nil || types.IsBlank(rec.Data.Personal.FullName) {
		return nil, &PreconditionError{Message: "Please enter your full name before exporting."}
	}

	key, err := exportKey(rec, opts)
	if err != nil {
		return nil, &PipelineError{Stage: StageBuild, Cause: err}
	}

	snapshot := rec.Clone()
	v, err, shared := p.group.Do(key, func() (any, error) {
		return p.run(ctx, snapshot, opts)
	})
	if shared {
		p.logger.Debug("export coalesced with an identical request", "format", opts.Format)
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// PrintDocument builds the standalone document with a print trigger, the fallback for a failed export.
func (p *Pipeline) PrintDocument(rec *types.ResumeRecord) (string, error) {
	cfg, _ := templates.Resolve(rec.TemplateID)
	fragment, err := p.engine.Render(rec, cfg)
	if err != nil {
		return "", err
	}
	return p.engine.BuildDocument(fragment, cfg, rendering.DocumentOptions{
		Width: PageWidth,
		Title: documentTitle(rec),
		Print: true,
	})
}

func (p *Pipeline) run(ctx context.Context, rec *types.ResumeRecord, opts Options) (*Result, error) {
	start := time.Now()
	cfg, _ := templates.Resolve(rec.TemplateID)
	fullName := strings.TrimSpace(rec.Data.Personal.FullName)
	log := p.logger.With("template", cfg.ID, "format", opts.Format)

	opts.report(StageBuild)
	fragment, err := p.engine.Render(rec, cfg)
	if err != nil {
		return nil, &PipelineError{Stage: StageBuild, Cause: err}
	}
	doc, err := p.engine.BuildDocument(fragment, cfg, rendering.DocumentOptions{
		Width: PageWidth,
		Title: documentTitle(rec),
	})
	if err != nil {
		return nil, &PipelineError{Stage: StageBuild, Cause: err}
	}

	fail := func(stage Stage, cause error) error {
		fallback, ferr := p.engine.BuildDocument(fragment, cfg, rendering.DocumentOptions{
			Width: PageWidth,
			Title: documentTitle(rec),
			Print: true,
		})
		if ferr != nil {
			fallback = ""
		}
		log.Warn("export failed", "stage", stage, "error", cause)
		return &PipelineError{Stage: stage, Cause: cause, FallbackHTML: fallback}
	}

	opts.report(StageOpen)
	surface, err := p.target.Open(ctx, DefaultViewport)
	if err != nil {
		return nil, fail(StageOpen, err)
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			log.Warn("failed to close render surface", "error", cerr)
		}
	}()

	opts.report(StageLoad)
	if err := surface.Load(ctx, doc); err != nil {
		return nil, fail(StageLoad, err)
	}
	opts.report(StageSettle)
	if err := surface.Settle(ctx, p.settle); err != nil {
		return nil, fail(StageSettle, err)
	}
	opts.report(StageMeasure)
	height, err := surface.Measure(ctx, contentSelector)
	if err != nil {
		return nil, fail(StageMeasure, err)
	}

	opts.report(StageCapture)
	res := &Result{Format: opts.Format, ContentHeight: height}
	switch opts.Format {
	case FormatPNG:
		captureHeight := math.Max(height, PageHeight)
		raster, err := surface.Screenshot(ctx, PageWidth, captureHeight)
		if err != nil {
			return nil, fail(StageCapture, err)
		}
		opts.report(StagePaginate)
		pages, err := Paginate(raster, RasterPageHeight)
		if err != nil {
			return nil, fail(StagePaginate, err)
		}
		for i, data := range pages {
			res.Pages = append(res.Pages, Page{Filename: PageFilename(fullName, i), Data: data})
		}
		res.Filename = res.Pages[0].Filename
		res.PageCount = len(pages)
	default:
		data, err := surface.PrintPDF(ctx)
		if err != nil {
			return nil, fail(StageCapture, err)
		}
		res.Data = data
		res.Filename = PDFFilename(fullName)
		res.PageCount, err = CountPDFPages(data)
		if err != nil {
			log.Debug("falling back to estimated page count", "error", err)
			res.PageCount = estimatePages(height)
		}
	}

	log.Info("export complete",
		"file", res.Filename,
		"pages", res.PageCount,
		"content_height", height,
		"duration", time.Since(start))
	return res, nil
}

func documentTitle(rec *types.ResumeRecord) string {
	name := strings.TrimSpace(rec.Data.Personal.FullName)
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}

// exportKey identifies an export by record content, template and format.
func exportKey(rec *types.ResumeRecord, opts Options) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to hash record: %w", err)
	}
	sum := sha256.Sum256(data)
	return string(opts.Format) + ":" + hex.EncodeToString(sum[:]), nil
}
