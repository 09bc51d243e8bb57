package event

import (
	"bufio"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
)

// XSINamespace is the XML Schema instance namespace.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// SchemaRef records one externally referenced schema identifier found in a
// document and whether the resolver supplied it.
type SchemaRef struct {
	PublicID string
	SystemID string
	Resolved bool
}

// XMLSource turns an XML byte stream into parse events.
//
// Namespace declarations are dropped from attribute lists. DOCTYPE public
// and system identifiers and xsi:schemaLocation entries are handed to the
// resolver, if any, as they are encountered.
type XMLSource struct {
	dec      *xml.Decoder
	resolver Resolver
	refs     []SchemaRef
	rootSeen bool
	depth    int
}

// NewXMLSource returns a Source reading XML from r. resolver may be nil.
func NewXMLSource(r io.Reader, resolver Resolver) *XMLSource {
	dec := xml.NewDecoder(bufio.NewReader(r))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel
	return &XMLSource{dec: dec, resolver: resolver}
}

// References returns the schema identifiers seen so far.
func (s *XMLSource) References() []SchemaRef {
	return s.refs
}

// Next implements Source.
func (s *XMLSource) Next() (Event, error) {
	for {
		line, col := s.dec.InputPos()
		tok, err := s.dec.Token()
		if err != nil {
			if err == io.EOF {
				if !s.rootSeen {
					return Event{}, &fcErrors.Error{
						Type:     fcErrors.ErrorTypeMalformed,
						Message:  "document has no root element",
						Location: fcErrors.Location{Line: line, Column: col},
					}
				}
				return Event{}, io.EOF
			}
			return Event{}, convertError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ev := Event{Type: Open, Name: t.Name.Local, Line: line, Column: col}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				ev.Attrs = append(ev.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			if !s.rootSeen {
				s.rootSeen = true
				if err := s.resolveSchemaLocations(t.Attr); err != nil {
					return Event{}, err
				}
			}
			s.depth++
			return ev, nil
		case xml.EndElement:
			s.depth--
			return Event{Type: Close, Name: t.Name.Local, Line: line, Column: col}, nil
		case xml.CharData:
			// Prolog and epilog whitespace is not document content.
			if s.depth == 0 {
				continue
			}
			return Event{Type: Text, Text: string(t), Line: line, Column: col}, nil
		case xml.Comment:
			return Event{Type: Comment, Text: string(t), Line: line, Column: col}, nil
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			return Event{Type: ProcInst, Name: t.Target, Text: string(t.Inst), Line: line, Column: col}, nil
		case xml.Directive:
			if err := s.resolveDoctype(string(t)); err != nil {
				return Event{}, err
			}
		}
	}
}

func (s *XMLSource) resolveDoctype(directive string) error {
	if !strings.HasPrefix(directive, "DOCTYPE") {
		return nil
	}
	publicID, systemID := parseDoctype(directive)
	if publicID == "" && systemID == "" {
		return nil
	}
	return s.resolve(publicID, systemID)
}

func (s *XMLSource) resolveSchemaLocations(attrs []xml.Attr) error {
	for _, a := range attrs {
		if a.Name.Space != XSINamespace || a.Name.Local != "schemaLocation" {
			continue
		}
		fields := strings.Fields(a.Value)
		for i := 1; i < len(fields); i += 2 {
			if err := s.resolve("", fields[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve asks the resolver for one identifier. The returned stream is
// drained and released before parsing continues.
func (s *XMLSource) resolve(publicID, systemID string) error {
	ref := SchemaRef{PublicID: publicID, SystemID: systemID}
	if s.resolver == nil {
		s.refs = append(s.refs, ref)
		return nil
	}

	rc, err := s.resolver.Resolve(publicID, systemID)
	if err != nil {
		return fcErrors.Wrap(fcErrors.ErrorTypeIO, err, fmt.Sprintf("cannot resolve schema %q", firstNonEmpty(systemID, publicID)))
	}
	if rc != nil {
		_, copyErr := io.Copy(io.Discard, rc)
		closeErr := rc.Close()
		if err := stderrors.Join(copyErr, closeErr); err != nil {
			return fcErrors.Wrap(fcErrors.ErrorTypeIO, err, fmt.Sprintf("cannot read schema %q", firstNonEmpty(systemID, publicID)))
		}
		ref.Resolved = true
	}
	s.refs = append(s.refs, ref)
	return nil
}

// parseDoctype extracts the identifiers of
// DOCTYPE name PUBLIC "pub" "sys" or DOCTYPE name SYSTEM "sys".
func parseDoctype(directive string) (publicID, systemID string) {
	var quoted []string
	rest := directive
	for {
		i := strings.IndexAny(rest, `"'`)
		if i < 0 {
			break
		}
		quote := rest[i]
		j := strings.IndexByte(rest[i+1:], quote)
		if j < 0 {
			break
		}
		quoted = append(quoted, rest[i+1:i+1+j])
		rest = rest[i+j+2:]
	}

	head := strings.Fields(directive)
	switch {
	case len(head) >= 3 && head[2] == "PUBLIC" && len(quoted) >= 2:
		return quoted[0], quoted[1]
	case len(head) >= 3 && head[2] == "PUBLIC" && len(quoted) == 1:
		return quoted[0], ""
	case len(head) >= 3 && head[2] == "SYSTEM" && len(quoted) >= 1:
		return "", quoted[0]
	}
	return "", ""
}

func convertError(err error) error {
	var syntaxErr *xml.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return &fcErrors.Error{
			Type:     fcErrors.ErrorTypeMalformed,
			Message:  syntaxErr.Msg,
			Location: fcErrors.Location{Line: syntaxErr.Line},
		}
	}
	return fcErrors.Wrap(fcErrors.ErrorTypeIO, err, "cannot read document")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
