package service

import (
	"strings"
	"testing"

	"github.com/energyledger/internal/db"
)

func TestRenderReflectionHTML(t *testing.T) {
	reflection := &db.DayReflection{
		Energized: "**morning walk** by the river",
		Drained:   "",
		Observed:  "less doomscrolling",
	}

	rendered := RenderReflectionHTML(reflection)

	if !strings.Contains(rendered.Energized, "<strong>morning walk</strong>") {
		t.Fatalf("expected markdown emphasis, got %q", rendered.Energized)
	}
	if rendered.Drained != "" {
		t.Fatalf("expected empty field to stay empty, got %q", rendered.Drained)
	}
	if !strings.Contains(rendered.Observed, "less doomscrolling") {
		t.Fatalf("expected plain text to survive, got %q", rendered.Observed)
	}
}

func TestRenderReflectionHTMLSanitizesScripts(t *testing.T) {
	reflection := &db.DayReflection{Observed: `<script>alert("x")</script>quiet evening`}

	rendered := RenderReflectionHTML(reflection)

	if strings.Contains(rendered.Observed, "<script") {
		t.Fatalf("script tag survived sanitization: %q", rendered.Observed)
	}
	if !strings.Contains(rendered.Observed, "quiet evening") {
		t.Fatalf("expected text content to survive, got %q", rendered.Observed)
	}
}

func TestRenderReflectionHTMLNil(t *testing.T) {
	if got := RenderReflectionHTML(nil); got != (ReflectionHTML{}) {
		t.Fatalf("expected zero value for nil reflection, got %+v", got)
	}
}
