package parser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"mercator-hq/facesconfig/internal/testdocs"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

func sample(t *testing.T, name string) Document {
	return BytesDocument(name, testdocs.Read(t, name))
}

func TestParser_Parse(t *testing.T) {
	cfg, err := NewParser().Parse(context.Background(), sample(t, testdocs.Base), sample(t, testdocs.Override))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	comp := cfg.Component("A")
	if comp == nil {
		t.Fatal("component A missing")
	}
	if comp.Class != "com.x.A" {
		t.Errorf("Class = %q, want %q", comp.Class, "com.x.A")
	}
	if comp.Family != "javax.faces.Input" {
		t.Errorf("Family = %q, want %q", comp.Family, "javax.faces.Input")
	}
	if comp.RendererType != "javax.faces.Text" {
		t.Errorf("RendererType = %q, want %q", comp.RendererType, "javax.faces.Text")
	}
	if got, want := comp.Description(), "An <b>input</b> field<br />"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
	if got := comp.DisplayName("fr").Text; got != "Champ" {
		t.Errorf("DisplayName(fr) = %q, want %q", got, "Champ")
	}
	if got := comp.DisplayName("").Text; got != "Input" {
		t.Errorf("DisplayName() = %q, want %q", got, "Input")
	}
	if icon := comp.Icon(""); icon == nil || icon.SmallIcon != "input16.png" {
		t.Errorf("Icon() = %+v, want small icon input16.png", icon)
	}

	prop := comp.Property("value")
	if prop == nil {
		t.Fatal("property value missing")
	}
	if !prop.PassThrough || !prop.Required {
		t.Errorf("property flags = pass-through %v, required %v, want both true", prop.PassThrough, prop.Required)
	}
	if prop.TagAttribute {
		t.Error("TagAttribute should be false once any document clears it")
	}
	if prop.Class != "java.lang.Object" {
		t.Errorf("property Class = %q, want %q", prop.Class, "java.lang.Object")
	}

	if b := cfg.Component("B"); b == nil || b.Class != "com.y.B" {
		t.Errorf("component B = %+v", b)
	}

	app := cfg.Application
	if app.ViewHandler != "com.y.ViewHandler" {
		t.Errorf("ViewHandler = %q, want %q", app.ViewHandler, "com.y.ViewHandler")
	}
	if app.MessageBundle != "com.x.Messages" {
		t.Errorf("MessageBundle = %q, want %q", app.MessageBundle, "com.x.Messages")
	}
	if got := app.LocaleConfig.SupportedLocales; !reflect.DeepEqual(got, []string{"fr", "de"}) {
		t.Errorf("SupportedLocales = %v, want [fr de]", got)
	}
	if app.LocaleConfig.DefaultLocale != "en" {
		t.Errorf("DefaultLocale = %q, want %q", app.LocaleConfig.DefaultLocale, "en")
	}

	rule := cfg.NavigationRule("/login.jsp")
	if rule == nil {
		t.Fatal("navigation rule /login.jsp missing")
	}
	if len(rule.Cases) != 2 || rule.Case("success", "") == nil || rule.Case("failure", "") == nil {
		t.Errorf("Cases = %+v, want success and failure", rule.Cases)
	}
	if cfg.NavigationRule("") == nil {
		t.Error("wildcard navigation rule missing")
	}

	if r := cfg.Renderer("javax.faces.Input", "javax.faces.Text"); r == nil || r.Class != "com.x.TextRenderer" {
		t.Errorf("Renderer() = %+v", r)
	}
	if cfg.Converter("money") == nil || cfg.ConverterForClass("java.lang.Long") == nil {
		t.Error("converters missing")
	}
	if cfg.ReferencedBean("dataSource") == nil {
		t.Error("referenced bean missing")
	}

	bean := cfg.ManagedBean("user")
	if bean == nil {
		t.Fatal("managed bean user missing")
	}
	name := bean.ManagedProperty("name")
	if name == nil || name.Value == nil || *name.Value != "guest" {
		t.Errorf("managed property name = %+v, want value guest", name)
	}
	if m := bean.ManagedProperty("manager"); m == nil || !m.NullValue {
		t.Errorf("managed property manager = %+v, want null value", m)
	}
}

func TestParser_QuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := NewParser().WithLogger(logger).Parse(context.Background(), sample(t, testdocs.Base))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("successful Parse() logged at info level: %s", buf.String())
	}
}

func TestParser_OrderMatters(t *testing.T) {
	cfg, err := NewParser().Parse(context.Background(), sample(t, testdocs.Override), sample(t, testdocs.Base))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := cfg.Application.ViewHandler; got != "com.x.ViewHandler" {
		t.Errorf("ViewHandler = %q, want %q", got, "com.x.ViewHandler")
	}
	if got := cfg.Component("A").DisplayName("fr").Text; got != "Saisie" {
		t.Errorf("DisplayName(fr) = %q, want %q", got, "Saisie")
	}
}

func TestParser_SameDocumentTwice(t *testing.T) {
	ctx := context.Background()
	once, err := NewParser().Parse(ctx, sample(t, testdocs.Base))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	twice, err := NewParser().Parse(ctx, sample(t, testdocs.Base), sample(t, testdocs.Base))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	onceCount, twiceCount := model.Count(once), model.Count(twice)
	for _, kind := range []model.Kind{model.KindComponent, model.KindProperty, model.KindConverter, model.KindManagedBean, model.KindManagedProperty, model.KindNavigationRule, model.KindDisplayName} {
		if onceCount[kind] != twiceCount[kind] {
			t.Errorf("%s count = %d, want %d", kind, twiceCount[kind], onceCount[kind])
		}
	}
	if got, want := twiceCount[model.KindNavigationCase], 2*onceCount[model.KindNavigationCase]; got != want {
		t.Errorf("NavigationCase count = %d, want %d", got, want)
	}
	if got := twice.Component("A").Class; got != "com.x.A" {
		t.Errorf("Class = %q, want %q", got, "com.x.A")
	}

	// Unkeyed collections append.
	if got := twice.Application.LocaleConfig.SupportedLocales; !reflect.DeepEqual(got, []string{"fr", "fr"}) {
		t.Errorf("SupportedLocales = %v, want [fr fr]", got)
	}
	roles := twice.ManagedBean("user").ManagedProperty("roles").ListEntries.Values
	if len(roles) != 4 {
		t.Errorf("len(roles) = %d, want 4", len(roles))
	}
}

func TestParser_DisjointDocumentsCommute(t *testing.T) {
	a := BytesDocument("a.xml", []byte(`<faces-config>
  <component><component-type>A</component-type><component-class>com.x.A</component-class></component>
  <converter><converter-id>c</converter-id><converter-class>com.x.C</converter-class></converter>
</faces-config>`))
	b := BytesDocument("b.xml", []byte(`<faces-config>
  <component><component-type>B</component-type><component-class>com.x.B</component-class></component>
  <component><component-type>A</component-type>
    <component-extension><component-family>fam</component-family></component-extension>
  </component>
</faces-config>`))

	ctx := context.Background()
	ab, err := NewParser().Parse(ctx, a, b)
	if err != nil {
		t.Fatalf("Parse(a, b) failed: %v", err)
	}
	ba, err := NewParser().Parse(ctx, b, a)
	if err != nil {
		t.Fatalf("Parse(b, a) failed: %v", err)
	}
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("Parse(a, b) and Parse(b, a) differ")
	}
}

func TestParser_ValidationError(t *testing.T) {
	cfg, err := NewParser().Parse(context.Background(), sample(t, testdocs.Base), sample(t, testdocs.InvalidProperty))
	if cfg != nil {
		t.Error("no graph should be returned on failure")
	}

	var perr *fcErrors.Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if perr.Type != fcErrors.ErrorTypeValidation {
		t.Errorf("Type = %s, want %s", perr.Type, fcErrors.ErrorTypeValidation)
	}
	if perr.Location.Document != testdocs.InvalidProperty {
		t.Errorf("Document = %q, want %q", perr.Location.Document, testdocs.InvalidProperty)
	}
	if perr.Kind != "ManagedProperty" || perr.Key != "items" {
		t.Errorf("entity = %s %q, want ManagedProperty %q", perr.Kind, perr.Key, "items")
	}
	if perr.Location.Line == 0 {
		t.Error("Line should be set")
	}
}

func TestParser_MalformedDocument(t *testing.T) {
	cfg, err := NewParser().Parse(context.Background(), sample(t, testdocs.Base), sample(t, testdocs.Malformed))
	if cfg != nil {
		t.Error("no graph should be returned on failure")
	}
	if !fcErrors.IsType(err, fcErrors.ErrorTypeMalformed) {
		t.Fatalf("err = %v, want malformed document", err)
	}
	var perr *fcErrors.Error
	errors.As(err, &perr)
	if perr.Location.Document != testdocs.Malformed {
		t.Errorf("Document = %q, want %q", perr.Location.Document, testdocs.Malformed)
	}
}

func TestParser_Parallel(t *testing.T) {
	dir := t.TempDir()
	paths := testdocs.WriteFiles(t, dir, testdocs.Base, testdocs.Override)
	ctx := context.Background()

	sequential, err := NewParser().ParseFiles(ctx, paths...)
	if err != nil {
		t.Fatalf("ParseFiles() failed: %v", err)
	}
	parallel, err := NewParser().WithParallelism(4).ParseFiles(ctx, paths...)
	if err != nil {
		t.Fatalf("ParseFiles() with parallelism failed: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Error("parallel result differs from sequential result")
	}
}

func TestParser_ParallelReportsEarliestFailure(t *testing.T) {
	docs := []Document{
		sample(t, testdocs.Base),
		sample(t, testdocs.InvalidProperty),
		sample(t, testdocs.Malformed),
	}
	_, err := NewParser().WithParallelism(3).Parse(context.Background(), docs...)
	if !fcErrors.IsType(err, fcErrors.ErrorTypeValidation) {
		t.Errorf("err = %v, want the validation error of %s", err, testdocs.InvalidProperty)
	}
}

func TestParser_MissingFile(t *testing.T) {
	_, err := NewParser().ParseFiles(context.Background(), t.TempDir()+"/missing.xml")
	if !fcErrors.IsType(err, fcErrors.ErrorTypeIO) {
		t.Errorf("err = %v, want I/O error", err)
	}
}

func TestParser_MaxDocumentSize(t *testing.T) {
	_, err := NewParser().WithMaxDocumentSize(128).Parse(context.Background(), sample(t, testdocs.Base))
	if !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("err = %v, want ErrDocumentTooLarge", err)
	}
}

// trackingDocument counts opens and closes of its stream.
type trackingDocument struct {
	Document
	mu     sync.Mutex
	opened int
	closed int
}

type trackingReader struct {
	io.Reader
	doc *trackingDocument
}

func (r trackingReader) Close() error {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.doc.closed++
	return nil
}

func (d *trackingDocument) Open() (io.ReadCloser, error) {
	rc, err := d.Document.Open()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.opened++
	d.mu.Unlock()
	return trackingReader{Reader: rc, doc: d}, nil
}

func TestParser_ClosesStreams(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"success", testdocs.Base},
		{"validation failure", testdocs.InvalidProperty},
		{"malformed", testdocs.Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &trackingDocument{Document: sample(t, tt.doc)}
			NewParser().Parse(context.Background(), doc)
			if doc.opened != 1 || doc.closed != 1 {
				t.Errorf("opened %d, closed %d, want 1 and 1", doc.opened, doc.closed)
			}
		})
	}
}

func TestParser_Resolver(t *testing.T) {
	var systemIDs []string
	resolver := event.ResolverFunc(func(publicID, systemID string) (io.ReadCloser, error) {
		systemIDs = append(systemIDs, systemID)
		return io.NopCloser(bytes.NewReader([]byte("<xsd:schema/>"))), nil
	})

	if _, err := NewParser().WithResolver(resolver).Parse(context.Background(), sample(t, testdocs.Base)); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	want := []string{"http://java.sun.com/xml/ns/javaee/web-facesconfig_1_2.xsd"}
	if !reflect.DeepEqual(systemIDs, want) {
		t.Errorf("resolved %v, want %v", systemIDs, want)
	}
}

func TestParser_ResolverFailure(t *testing.T) {
	resolver := event.ResolverFunc(func(string, string) (io.ReadCloser, error) {
		return nil, errors.New("offline")
	})
	cfg, err := NewParser().WithResolver(resolver).Parse(context.Background(), sample(t, testdocs.Base))
	if cfg != nil || err == nil {
		t.Errorf("Parse() = %v, %v, want failure", cfg, err)
	}
}

func TestParser_ObserverAndRecorder(t *testing.T) {
	var mu sync.Mutex
	merges := 0
	observer := ObserverFunc(func(tr Transition) {
		mu.Lock()
		defer mu.Unlock()
		if tr.Op == OpMerge && tr.Kind == model.KindFacesConfig {
			merges++
		}
	})
	rec := &fakeRecorder{}

	_, err := NewParser().WithObserver(observer).WithRecorder(rec).
		Parse(context.Background(), sample(t, testdocs.Base), sample(t, testdocs.Override))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if merges != 2 {
		t.Errorf("document merges = %d, want 2", merges)
	}
	if rec.documents != 2 || rec.parses != 1 {
		t.Errorf("recorded %d documents and %d parses, want 2 and 1", rec.documents, rec.parses)
	}
}

type fakeRecorder struct {
	mu        sync.Mutex
	documents int
	parses    int
}

func (r *fakeRecorder) RecordDocument(string, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents++
}

func (r *fakeRecorder) RecordParse(int, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parses++
}

func TestParser_NoDocuments(t *testing.T) {
	cfg, err := NewParser().Parse(context.Background())
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(model.Count(cfg)) > 1 {
		t.Errorf("Count() = %v, want an empty graph", model.Count(cfg))
	}
}

func TestLimitReader(t *testing.T) {
	r := &limitReader{r: bytes.NewReader(make([]byte, 10)), max: 10}
	if _, err := io.ReadAll(r); err != nil {
		t.Errorf("ReadAll() at the limit failed: %v", err)
	}

	r = &limitReader{r: bytes.NewReader(make([]byte, 11)), max: 10}
	if _, err := io.ReadAll(r); !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("err = %v, want ErrDocumentTooLarge", err)
	}
}
