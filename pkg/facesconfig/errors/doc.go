// Package errors defines the error taxonomy of faces configuration parsing.
//
// Every failure is reported as an *Error carrying a Type:
//
//   - ErrorTypeMalformed: the tokenizer rejected the document bytes
//   - ErrorTypeStructural: an element appeared at a path with no rule, or
//     under an entity of the wrong kind
//   - ErrorTypeValidation: a merged entity violates an invariant (missing
//     identity key, mutually exclusive fields)
//   - ErrorTypeUnsupported: content the active rule cannot interpret, such
//     as a comment inside a rich-text description
//   - ErrorTypeIO: a document could not be opened or read
//
// Errors carry the document name, the element path, and the entity kind and
// identity key where they apply, so a fault can be located without parsing
// again. Use IsType or errors.As to inspect them:
//
//	var perr *errors.Error
//	if stderrors.As(err, &perr) && perr.Type == errors.ErrorTypeValidation {
//	    fmt.Println(perr.Kind, perr.Key, perr.Location.Document)
//	}
//
// ErrorList accumulates errors across documents for reporting tools that
// keep going after the first failure.
package errors
