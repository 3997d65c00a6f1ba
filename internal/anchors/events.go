package anchors

import (
	"log/slog"
)

// EventKind classifies a reconciliation diagnostic.
type EventKind string

const (
	// EventOverwrite means a match replaced a different, pre-existing new name.
	EventOverwrite EventKind = "overwrite"
	// EventAmbiguous means more than one distinct anchor matched.
	EventAmbiguous EventKind = "ambiguous"
	// EventSkip means no match was attempted for a legacy name.
	EventSkip EventKind = "skip"
)

// Skip reasons.
const (
	ReasonCrossChapter = "cross-chapter reference"
	ReasonNoSection    = "no section"
)

// Event is a non-fatal diagnostic produced by Reconcile.
type Event struct {
	Kind        EventKind `json:"kind" yaml:"kind"`
	ID          StableID  `json:"id" yaml:"id"`
	Legacy      string    `json:"legacy,omitempty" yaml:"legacy,omitempty"`
	Previous    string    `json:"previous,omitempty" yaml:"previous,omitempty"`
	Replacement string    `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Candidates  []string  `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Reason      string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// LogEvents writes each event to log. Overwrites and ambiguous matches are
// warnings; skips are informational.
func LogEvents(log *slog.Logger, events []Event) {
	if log == nil {
		log = slog.Default()
	}
	for _, e := range events {
		switch e.Kind {
		case EventOverwrite:
			log.Warn("overwrote new name", "id", e.ID, "legacy", e.Legacy,
				"previous", e.Previous, "replacement", e.Replacement)
		case EventAmbiguous:
			log.Warn("ambiguous match", "id", e.ID, "legacy", e.Legacy,
				"chosen", e.Replacement, "candidates", e.Candidates)
		case EventSkip:
			log.Info("skipped legacy name", "id", e.ID, "legacy", e.Legacy, "reason", e.Reason)
		default:
			log.Info("reconcile event", "kind", e.Kind, "id", e.ID)
		}
	}
}

// Count returns the number of events of the given kind.
func Count(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
