// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "strings"

// Markers the system prompt asks the model to emit.
const (
	ValuableMarker = "价值判断：有"
	SummaryMarker  = "深度总结："
	DiscardMarker  = "放弃"
)

// reasonCutset holds the bracket and space characters trimmed from a
// discard reason, full-width and ASCII.
const reasonCutset = "（）() "

// Verdict is the parsed outcome of one classification response.
type Verdict struct {
	// Valuable is true when the response contains ValuableMarker.
	Valuable bool

	// Summary is the text after the last SummaryMarker (the whole response
	// when the marker is missing). Set only for valuable items.
	Summary string

	// Reason is the best-effort discard reason. Set only for discarded items.
	Reason string

	// Ambiguous marks a discarded response that carried neither the valuable
	// marker nor the discard marker. It may be a malformed valuable reply.
	Ambiguous bool
}

// Parse turns free-text model output into a Verdict. It is a pure function of
// text.
func Parse(text string) Verdict {
	if strings.Contains(text, ValuableMarker) {
		summary := text
		if i := strings.LastIndex(text, SummaryMarker); i >= 0 {
			summary = text[i+len(SummaryMarker):]
		}
		return Verdict{Valuable: true, Summary: strings.TrimSpace(summary)}
	}

	reason := strings.ReplaceAll(text, DiscardMarker, "")
	reason = strings.Trim(reason, reasonCutset)
	return Verdict{
		Reason:    reason,
		Ambiguous: !strings.Contains(text, DiscardMarker),
	}
}
