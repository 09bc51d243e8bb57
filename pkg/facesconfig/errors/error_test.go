package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeStructural,
		Message:    "no rule for element",
		Location:   Location{Document: "faces-config.xml", Line: 3, Column: 5},
		Path:       "faces-config/compnent",
		Suggestion: "Did you mean 'component'?",
	}

	got := err.Error()
	for _, want := range []string{
		"[structural_violation] no rule for element",
		"--> faces-config.xml:3:5",
		"at faces-config/compnent",
		"= suggestion: Did you mean 'component'?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestError_ValidationIncludesKindAndKey(t *testing.T) {
	err := Validation("ManagedProperty", "items", "value and list-entries are mutually exclusive")
	err.Location.Document = "b.xml"

	got := err.Error()
	if !strings.Contains(got, `(ManagedProperty "items")`) {
		t.Errorf("Error() = %q, missing kind and key", got)
	}
	if !strings.Contains(got, "--> b.xml") {
		t.Errorf("Error() = %q, missing document", got)
	}
}

func TestIsType(t *testing.T) {
	base := New(ErrorTypeMalformed, "unexpected EOF")
	wrapped := fmt.Errorf("document a.xml: %w", base)

	if !IsType(wrapped, ErrorTypeMalformed) {
		t.Error("IsType() should see through wrapping")
	}
	if IsType(wrapped, ErrorTypeValidation) {
		t.Error("IsType() matched the wrong type")
	}
	if IsType(io.EOF, ErrorTypeIO) {
		t.Error("IsType() matched a foreign error")
	}
}

func TestError_Unwrap(t *testing.T) {
	err := Wrap(ErrorTypeIO, os.ErrNotExist, "cannot open document")
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is() should reach the cause")
	}
}

func TestInDocument(t *testing.T) {
	err := Validation("Component", "", "component-type is required")
	InDocument(err, "a.xml")
	if err.Location.Document != "a.xml" {
		t.Errorf("Document = %q, want %q", err.Location.Document, "a.xml")
	}

	InDocument(err, "b.xml")
	if err.Location.Document != "a.xml" {
		t.Error("InDocument() should not overwrite an existing document")
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	if el.ToError() != nil {
		t.Error("empty list should convert to nil")
	}

	el.AddError(New(ErrorTypeStructural, "bad path"), "a.xml")
	el.AddError(io.ErrUnexpectedEOF, "b.xml")

	if el.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", el.Count())
	}
	if got := len(el.ByType(ErrorTypeIO)); got != 1 {
		t.Errorf("len(ByType(io)) = %d, want 1", got)
	}
	if el.Errors[1].Location.Document != "b.xml" {
		t.Errorf("Document = %q, want %q", el.Errors[1].Location.Document, "b.xml")
	}
	if !strings.Contains(el.Error(), "Found 2 error(s)") {
		t.Errorf("Error() = %q", el.Error())
	}
}

func TestSuggestElement(t *testing.T) {
	valid := []string{"component", "converter", "managed-bean", "navigation-rule"}

	if got := SuggestElement("compnent", valid); got != "Did you mean 'component'?" {
		t.Errorf("SuggestElement() = %q", got)
	}
	if got := SuggestElement("zzzzzzzzzzzzzz", valid); !strings.HasPrefix(got, "Valid elements: ") {
		t.Errorf("SuggestElement() = %q, want list of valid elements", got)
	}
	if got := SuggestElement("x", nil); got != "" {
		t.Errorf("SuggestElement() = %q, want empty", got)
	}
}

func TestAddContextToError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faces-config.xml")
	content := "<faces-config>\n  <component>\n    <bogus/>\n  </component>\n</faces-config>\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := AddContextToError(&Error{
		Type:     ErrorTypeStructural,
		Message:  "no rule",
		Location: Location{Document: path, Line: 3, Column: 5},
	})
	if !strings.Contains(err.Context, "-> 3 |     <bogus/>") {
		t.Errorf("Context = %q", err.Context)
	}
}
