// Package parser builds faces configuration graphs from parse events.
//
// # Dispatcher
//
// A RuleTable maps full element paths, such as
// "faces-config/component/property/property-name", to a Rule. The
// dispatcher keeps the current path and a stack of entities under
// construction in an explicit Context:
//
//   - Open looks up the rule for the new path, checks that the stack top
//     has the kind the rule requires, and runs its Begin handler, which
//     pushes a fresh entity for entity rules.
//   - Text accumulates into the innermost open element.
//   - Close runs the End handler. Field rules copy the trimmed text into
//     the stack top; entity rules pop, validate, and attach the finished
//     entity to its parent, merging it into an existing sibling when its
//     identity key is already taken.
//
// An element at an unregistered path is a structural violation, except
// below *-extension elements, whose unknown children are skipped.
// Descriptions are captured verbatim as markup; a comment or processing
// instruction inside one is unsupported content.
//
// Every transition (push, pop, attach, merge) is reported to the Observer,
// if one is configured.
//
// # Orchestrator
//
// Parser runs the dispatcher once per Document and merges each document's
// root into the accumulated graph in input order, using the same merge
// engine as for duplicates within a document. The run is all-or-nothing:
// the first error is returned and no graph is produced.
//
//	p := parser.NewParser().
//	    WithResolver(event.NewDirResolver("schemas")).
//	    WithParallelism(4)
//
//	cfg, err := p.ParseFiles(ctx, "META-INF/faces-config.xml", "WEB-INF/faces-config.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// With parallelism above one, documents are dispatched concurrently; the
// merge still happens sequentially, in input order, after every document
// has been dispatched.
package parser
