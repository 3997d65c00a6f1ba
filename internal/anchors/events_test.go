package anchors

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	LogEvents(log, []Event{
		{Kind: EventOverwrite, ID: "E", Previous: "Old", Replacement: "New"},
		{Kind: EventSkip, ID: "S2", Legacy: "a/b", Reason: ReasonCrossChapter},
	})

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "previous=Old") {
		t.Errorf("expected overwrite warning, got:\n%s", out)
	}
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "id=S2") {
		t.Errorf("expected skip info line, got:\n%s", out)
	}
}
