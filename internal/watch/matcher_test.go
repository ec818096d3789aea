package watch

import (
	"testing"

	"watchrun/internal/event"
)

func TestMatchActionFirstMatchWins(t *testing.T) {
	spec := Spec{Actions: []Action{
		{Event: "create_file", Command: "first {}"},
		{Event: "any", Command: "second {}"},
	}}

	ev := event.Event{Kind: event.KindCreateFile, Paths: []string{"/a/f"}}
	matched, _, ok := spec.MatchAction(ev)
	if !ok {
		t.Fatal("expected a match")
	}
	if matched.Command != "first {}" {
		t.Fatalf("file creation must select the first action, got %q", matched.Command)
	}
}

func TestMatchActionAnyFallback(t *testing.T) {
	spec := Spec{Actions: []Action{
		{Event: "remove_file", Command: "on-remove {}"},
		{Event: "any", Command: "fallback {}"},
	}}

	ev := event.Event{Kind: event.KindContentChange, Paths: []string{"/a/f"}}
	matched, _, ok := spec.MatchAction(ev)
	if !ok || matched.Command != "fallback {}" {
		t.Fatalf("expected the any action, got %+v ok=%v", matched, ok)
	}
}

func TestMatchActionSelectorCaseFolded(t *testing.T) {
	spec := Spec{Actions: []Action{{Event: "ANY", Command: "run {}"}}}
	_, _, ok := spec.MatchAction(event.Event{Kind: event.KindAccess})
	if !ok {
		t.Fatal("selector comparison must be case-folded")
	}
}

func TestMatchActionUnlabeledKindOnlyMatchesAny(t *testing.T) {
	spec := Spec{Actions: []Action{
		{Event: "create_file", Command: "create {}"},
	}}
	// Unclassified events carry no primary label, so only "any" can match.
	if _, _, ok := spec.MatchAction(event.Event{Kind: event.KindUnclassified}); ok {
		t.Fatal("kind without a primary label must not match a named selector")
	}

	spec.Actions = append(spec.Actions, Action{Event: "any", Command: "always {}"})
	matched, _, ok := spec.MatchAction(event.Event{Kind: event.KindUnclassified})
	if !ok || matched.Command != "always {}" {
		t.Fatal("any must still match an unlabeled kind")
	}
}

func TestMatchActionSkipsEmptyCommands(t *testing.T) {
	spec := Spec{Actions: []Action{
		{Event: "create_file", Command: "   "},
		{Event: "any", Command: "run {}"},
	}}

	ev := event.Event{Kind: event.KindCreateFile, Paths: []string{"/a/f"}}
	matched, skipped, ok := spec.MatchAction(ev)
	if !ok || matched.Command != "run {}" {
		t.Fatalf("blank command must be skipped in favor of later matches, got %+v", matched)
	}
	if len(skipped) != 1 || skipped[0].Event != "create_file" {
		t.Fatalf("skipped blank actions must be reported, got %+v", skipped)
	}
}

func TestMatchActionNoActions(t *testing.T) {
	spec := Spec{}
	if _, _, ok := spec.MatchAction(event.Event{Kind: event.KindCreateFile}); ok {
		t.Fatal("a watch without actions matches nothing")
	}
}

func TestMatchActionDeterministic(t *testing.T) {
	spec := Spec{Actions: []Action{
		{Event: "any", Command: "a {}"},
		{Event: "any", Command: "b {}"},
	}}
	ev := event.Event{Kind: event.KindContentChange}
	for i := 0; i < 10; i++ {
		matched, _, ok := spec.MatchAction(ev)
		if !ok || matched.Command != "a {}" {
			t.Fatal("selection must be deterministic and first-match-wins")
		}
	}
}
