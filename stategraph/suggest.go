package stategraph

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestEvent builds the diagnostic descriptor for an unknown event-name
// reference, enriched with a "did you mean" nudge when a registered event
// name is a close spelling match (ground: the teacher's suggestion helper
// in pkgs/parser paired with fuzzy matching against the symbol table).
func (p *Parser) suggestEvent(name string) string {
	return suggest(fmt.Sprintf("unknown event %q", name), name, p.events.EventNames())
}

// suggestHandle is suggestEvent's counterpart for Event_Handle references.
func (p *Parser) suggestHandle(name string) string {
	return suggest(fmt.Sprintf("unknown event handle %q", name), name, p.events.HandleNames())
}

func suggest(base, name string, known []string) string {
	matches := fuzzy.RankFindNormalizedFold(name, known)
	if len(matches) == 0 {
		return base
	}
	matches.Sort()
	return fmt.Sprintf("%s, did you mean %q?", base, matches[0].Target)
}
