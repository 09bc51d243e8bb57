// Package facesconfig builds one in-memory faces configuration graph from an
// ordered list of configuration documents.
//
// Most callers need only ParseFiles:
//
//	cfg, err := facesconfig.ParseFiles(ctx, "META-INF/faces-config.xml", "WEB-INF/faces-config.xml")
//	if err != nil {
//	    return err
//	}
//	comp := cfg.Component("javax.faces.HtmlInputText")
//
// Later documents override earlier ones field by field. The subpackages
// expose the pieces: model (the graph), parser (dispatcher and
// orchestrator), merge (merge policies), event (the tokenizer boundary) and
// errors (the error taxonomy).
package facesconfig

import (
	"context"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// ParseFiles parses the documents at paths, in order, with the default
// parser.
func ParseFiles(ctx context.Context, paths ...string) (*model.FacesConfig, error) {
	return parser.NewParser().ParseFiles(ctx, paths...)
}

// ParseBytes parses a single in-memory document.
func ParseBytes(ctx context.Context, name string, data []byte) (*model.FacesConfig, error) {
	return parser.NewParser().Parse(ctx, parser.BytesDocument(name, data))
}

// Lint parses every document on its own and then all of them together,
// collecting one error per failing document instead of stopping at the
// first. Merge conflicts are only reported once every document parses.
func Lint(ctx context.Context, p *parser.Parser, docs ...parser.Document) *fcErrors.ErrorList {
	if p == nil {
		p = parser.NewParser()
	}

	list := fcErrors.NewErrorList()
	for _, doc := range docs {
		if _, err := p.Parse(ctx, doc); err != nil {
			list.AddError(err, doc.Name())
		}
	}
	if list.HasErrors() || len(docs) < 2 {
		return list
	}

	if _, err := p.Parse(ctx, docs...); err != nil {
		list.AddError(err, "")
	}
	return list
}
