package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Outcome describes a finished load.
type Outcome struct {
	RunID     string
	Trigger   Trigger
	Version   string
	Documents []string
	Graph     *model.FacesConfig
	Err       error
	Duration  time.Duration
	Time      time.Time
}

// NewRecord builds a record from a load outcome. Counts are taken from the
// graph on success; failures carry the error type of the first ingestion
// error found in the chain.
func NewRecord(o Outcome) *Record {
	r := &Record{
		ID:        uuid.NewString(),
		RunID:     o.RunID,
		Trigger:   o.Trigger,
		Version:   o.Version,
		Documents: append([]string(nil), o.Documents...),
		Status:    StatusSuccess,
		Duration:  o.Duration,
		Time:      o.Time,
	}
	if r.Trigger == "" {
		r.Trigger = TriggerLoad
	}
	if r.Time.IsZero() {
		r.Time = time.Now()
	}

	if o.Err != nil {
		r.Status = StatusFailure
		r.Error = o.Err.Error()
		var fe *fcErrors.Error
		if errors.As(o.Err, &fe) {
			r.ErrorType = string(fe.Type)
		}
		return r
	}

	if o.Graph != nil {
		r.Counts = make(map[string]int)
		for kind, n := range model.Count(o.Graph) {
			if n > 0 {
				r.Counts[kind.String()] = n
			}
		}
	}
	return r
}
