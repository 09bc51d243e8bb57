package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mercator-hq/facesconfig/internal/testdocs"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

func TestNewRecord_Success(t *testing.T) {
	graph, err := parser.NewParser().Parse(context.Background(),
		parser.BytesDocument("base.xml", testdocs.Read(t, testdocs.Base)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	r := NewRecord(Outcome{
		RunID:     "run-1",
		Version:   "abc",
		Documents: []string{"base.xml"},
		Graph:     graph,
		Duration:  time.Millisecond,
	})

	if r.ID == "" {
		t.Error("ID is empty")
	}
	if r.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", r.Status, StatusSuccess)
	}
	if r.Trigger != TriggerLoad {
		t.Errorf("Trigger = %q, want %q", r.Trigger, TriggerLoad)
	}
	if r.Counts["FacesConfig"] != 1 {
		t.Errorf("Counts[FacesConfig] = %d, want 1", r.Counts["FacesConfig"])
	}
	if r.Counts["Component"] == 0 {
		t.Error("Counts[Component] = 0, want components counted")
	}
	if r.Time.IsZero() {
		t.Error("Time is zero")
	}
}

func TestNewRecord_Failure(t *testing.T) {
	cause := fcErrors.Validation("ManagedProperty", "items", "conflicting value forms")
	r := NewRecord(Outcome{
		RunID:     "run-2",
		Trigger:   TriggerReload,
		Documents: []string{"broken.xml"},
		Err:       fmt.Errorf("reload failed: %w", cause),
	})

	if r.Status != StatusFailure {
		t.Errorf("Status = %q, want %q", r.Status, StatusFailure)
	}
	if r.ErrorType != string(fcErrors.ErrorTypeValidation) {
		t.Errorf("ErrorType = %q, want %q", r.ErrorType, fcErrors.ErrorTypeValidation)
	}
	if r.Counts != nil {
		t.Errorf("Counts = %v, want nil", r.Counts)
	}
	if r.Trigger != TriggerReload {
		t.Errorf("Trigger = %q, want %q", r.Trigger, TriggerReload)
	}
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	a := NewRecord(Outcome{RunID: "r"})
	b := NewRecord(Outcome{RunID: "r"})
	if a.ID == b.ID {
		t.Errorf("IDs collide: %q", a.ID)
	}
}
