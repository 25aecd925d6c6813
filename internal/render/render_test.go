package render

import (
	"strings"
	"testing"
)

func TestCrisisBlock_CarriesHelplines(t *testing.T) {
	for _, want := range []string{
		"Immediate Support Needed",
		"Umang Helpline 0317-6367833",
		"Text HOME to 741741",
		"Emergency 15 or 1122",
	} {
		if !strings.Contains(CrisisBlock, want) {
			t.Fatalf("crisis block missing %q", want)
		}
	}
}

func TestAssistantBlock_EscapesText(t *testing.T) {
	out := AssistantBlock(`take a <deep> breath & "rest"`)
	if !strings.Contains(out, "take a &lt;deep&gt; breath &amp;") {
		t.Fatalf("text not escaped: %q", out)
	}
	if !strings.Contains(out, "#10B981") {
		t.Fatalf("expected green border fragment, got %q", out)
	}
}

func TestFallbackBlock_WrapsText(t *testing.T) {
	out := FallbackBlock("I'm here to help. Could you tell me more about how you're feeling?")
	if !strings.Contains(out, "Could you tell me more about how you&#39;re feeling?") {
		t.Fatalf("fallback text missing: %q", out)
	}
	if !strings.Contains(out, "#f39c12") {
		t.Fatalf("expected amber border fragment, got %q", out)
	}
}
