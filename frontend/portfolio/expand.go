package portfolio

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// DescriptionLimit is the length above which a certificate description is
// clamped behind a Read More toggle.
const DescriptionLimit = 150

// Expanded is the set of certificate ids whose description is open. It
// travels in the ?expand= query parameter.
type Expanded map[string]struct{}

func ParseExpanded(raw string) Expanded {
	e := Expanded{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			e[id] = struct{}{}
		}
	}
	return e
}

func (e Expanded) Has(id string) bool {
	_, ok := e[id]
	return ok
}

// Toggle returns a copy of e with id flipped. e is not modified.
func (e Expanded) Toggle(id string) Expanded {
	out := make(Expanded, len(e)+1)
	for k := range e {
		out[k] = struct{}{}
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// String is the canonical sorted form used in URLs.
func (e Expanded) String() string {
	ids := make([]string, 0, len(e))
	for k := range e {
		ids = append(ids, k)
	}
	slices.Sort(ids)
	return strings.Join(ids, ",")
}

// IsLong reports whether a description needs the toggle.
func IsLong(description string) bool {
	return utf8.RuneCountInString(description) > DescriptionLimit
}
