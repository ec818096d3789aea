package watch

import (
	"strings"

	"watchrun/internal/event"
)

// SelectorAny matches every event kind.
const SelectorAny = "any"

// MatchAction scans the watch's actions in configured order and returns the
// first whose selector matches the event's primary kind. Selector matching is
// case-folded; "any" matches every kind. A matching action whose command is
// empty after trimming is skipped rather than executed; such actions are
// returned in skipped so the caller can log them. Selection is deterministic
// and first-match-wins.
func (s Spec) MatchAction(ev event.Event) (matched Action, skipped []Action, ok bool) {
	primary := ev.Kind.Primary()
	for _, action := range s.Actions {
		selector := strings.ToLower(action.Event)
		if selector != SelectorAny && (primary == "" || selector != primary) {
			continue
		}
		if strings.TrimSpace(action.Command) == "" {
			skipped = append(skipped, action)
			continue
		}
		return action, skipped, true
	}
	return Action{}, skipped, false
}
