package parser

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/merge"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// DefaultMaxDocumentSize is the default per-document size limit (10MB).
const DefaultMaxDocumentSize = 10 * 1024 * 1024

// Tokenizer turns a document byte stream into parse events.
type Tokenizer func(r io.Reader, resolver event.Resolver) event.Source

// XMLTokenizer is the default Tokenizer.
func XMLTokenizer(r io.Reader, resolver event.Resolver) event.Source {
	return event.NewXMLSource(r, resolver)
}

// Recorder receives per-document and per-run outcomes, typically for
// metrics.
type Recorder interface {
	RecordDocument(document string, duration time.Duration, err error)
	RecordParse(documents int, duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordDocument(string, time.Duration, error) {}
func (noopRecorder) RecordParse(int, time.Duration, error) {}

// Parser builds one configuration graph from an ordered list of documents.
// A Parser holds no per-run state and is safe for concurrent use once
// configured.
type Parser struct {
	rules           *RuleTable
	observer        Observer
	resolver        event.Resolver
	tokenizer       Tokenizer
	maxDocumentSize int64
	parallelism     int
	logger          *slog.Logger
	tracer          trace.Tracer
	recorder        Recorder
}

// NewParser creates a parser with the default rule table, the XML
// tokenizer and sequential dispatch.
func NewParser() *Parser {
	return &Parser{
		rules:           DefaultRules(),
		observer:        NoopObserver{},
		tokenizer:       XMLTokenizer,
		maxDocumentSize: DefaultMaxDocumentSize,
		parallelism:     1,
		logger:          slog.Default(),
		tracer:          noop.NewTracerProvider().Tracer("facesconfig"),
		recorder:        noopRecorder{},
	}
}

// WithRules replaces the rule table.
func (p *Parser) WithRules(rules *RuleTable) *Parser {
	p.rules = rules
	return p
}

// WithObserver sets the transition observer. nil disables observation.
func (p *Parser) WithObserver(o Observer) *Parser {
	if o == nil {
		o = NoopObserver{}
	}
	p.observer = o
	return p
}

// WithResolver sets the resolver for externally referenced schemas.
func (p *Parser) WithResolver(r event.Resolver) *Parser {
	p.resolver = r
	return p
}

// WithTokenizer replaces the XML tokenizer.
func (p *Parser) WithTokenizer(t Tokenizer) *Parser {
	p.tokenizer = t
	return p
}

// WithMaxDocumentSize sets the per-document size limit. Zero disables it.
func (p *Parser) WithMaxDocumentSize(size int64) *Parser {
	p.maxDocumentSize = size
	return p
}

// WithParallelism sets how many documents are dispatched concurrently.
// Results are always merged in input order.
func (p *Parser) WithParallelism(n int) *Parser {
	if n < 1 {
		n = 1
	}
	p.parallelism = n
	return p
}

// WithLogger sets the logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithTracer sets the tracer used for run and document spans.
func (p *Parser) WithTracer(tracer trace.Tracer) *Parser {
	if tracer != nil {
		p.tracer = tracer
	}
	return p
}

// WithRecorder sets the outcome recorder.
func (p *Parser) WithRecorder(r Recorder) *Parser {
	if r == nil {
		r = noopRecorder{}
	}
	p.recorder = r
	return p
}

// Parse reads docs and merges them, in order, into one graph. The first
// failure aborts the run and no graph is returned.
func (p *Parser) Parse(ctx context.Context, docs ...Document) (*model.FacesConfig, error) {
	runID, ok := ctx.Value(runIDKey{}).(string)
	if !ok || runID == "" {
		runID = uuid.NewString()
	}
	ctx, span := p.tracer.Start(ctx, "facesconfig.parse", trace.WithAttributes(
		attribute.String("facesconfig.run_id", runID),
		attribute.Int("facesconfig.documents", len(docs)),
	))
	defer span.End()

	logger := p.logger.With("run_id", runID)
	logger.Debug("Parsing documents", "documents", len(docs), "parallelism", p.parallelism)
	start := time.Now()

	cfg, err := p.parse(ctx, logger, docs)
	duration := time.Since(start)
	p.recorder.RecordParse(len(docs), duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		logger.Error("Parse failed", "error", err, "duration_ms", duration.Milliseconds())
		return nil, err
	}

	logger.Debug("Documents parsed",
		"documents", len(docs),
		"components", len(cfg.Components),
		"managed_beans", len(cfg.ManagedBeans),
		"duration_ms", duration.Milliseconds(),
	)
	return cfg, nil
}

type runIDKey struct{}

// ContextWithRunID makes a Parse call under ctx use id as its run ID
// instead of generating one.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// ParseFiles parses the files at paths, in order.
func (p *Parser) ParseFiles(ctx context.Context, paths ...string) (*model.FacesConfig, error) {
	docs := make([]Document, len(paths))
	for i, path := range paths {
		docs[i] = FileDocument(path)
	}
	return p.Parse(ctx, docs...)
}

// ParseEvents runs the dispatcher over an already tokenized document.
func (p *Parser) ParseEvents(ctx context.Context, name string, src event.Source) (*model.FacesConfig, error) {
	return p.rules.Run(ctx, NewContext(name, p.observer), src)
}

func (p *Parser) parse(ctx context.Context, logger *slog.Logger, docs []Document) (*model.FacesConfig, error) {
	roots, err := p.parseAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	cfg := model.NewFacesConfig()
	for i, root := range roots {
		name := docs[i].Name()
		if err := merge.Merge(cfg, root); err != nil {
			return nil, fcErrors.InDocument(err, name)
		}
		p.observer.Observe(Transition{Op: OpMerge, Kind: model.KindFacesConfig, Document: name})
		logger.Debug("Document merged", "document", name)
	}
	return cfg, nil
}

// parseAll dispatches every document and returns their roots in input
// order. With parallelism above one documents are dispatched concurrently;
// the caller merges sequentially afterwards.
func (p *Parser) parseAll(ctx context.Context, docs []Document) ([]*model.FacesConfig, error) {
	roots := make([]*model.FacesConfig, len(docs))

	if p.parallelism <= 1 || len(docs) <= 1 {
		for i, doc := range docs {
			root, err := p.parseDocument(ctx, doc)
			if err != nil {
				return nil, err
			}
			roots[i] = root
		}
		return roots, nil
	}

	// A failure stops documents after it from starting, but documents
	// before it always finish, so the reported error is the one of the
	// earliest failing document whatever the scheduling.
	var (
		mu     sync.Mutex
		failed = len(docs)
		errs   = make([]error, len(docs))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)
	for i, doc := range docs {
		mu.Lock()
		stop := i > failed
		mu.Unlock()
		if stop {
			break
		}
		g.Go(func() error {
			root, err := p.parseDocument(gctx, doc)
			if err != nil {
				mu.Lock()
				errs[i] = err
				if i < failed {
					failed = i
				}
				mu.Unlock()
				return nil
			}
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if failed < len(docs) {
		return nil, errs[failed]
	}
	return roots, nil
}

func (p *Parser) parseDocument(ctx context.Context, doc Document) (root *model.FacesConfig, err error) {
	name := doc.Name()
	ctx, span := p.tracer.Start(ctx, "facesconfig.document", trace.WithAttributes(
		attribute.String("facesconfig.document", name),
	))
	start := time.Now()
	defer func() {
		p.recorder.RecordDocument(name, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "document failed")
		}
		span.End()
	}()

	rc, err := doc.Open()
	if err != nil {
		return nil, &fcErrors.Error{
			Type:     fcErrors.ErrorTypeIO,
			Message:  "cannot open document",
			Location: fcErrors.Location{Document: name},
			Cause:    err,
		}
	}
	defer rc.Close()

	var r io.Reader = rc
	if p.maxDocumentSize > 0 {
		r = &limitReader{r: rc, max: p.maxDocumentSize}
	}

	return p.rules.Run(ctx, NewContext(name, p.observer), p.tokenizer(r, p.resolver))
}
