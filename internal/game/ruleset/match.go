package ruleset

import (
	"sort"
	"strings"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
)

// Entry is a named value taking part in a fuzzy search.
type Entry[V any] struct {
	Name  string
	Value V
}

// MatchStatus is the outcome of a fuzzy search.
type MatchStatus int

const (
	// MatchNotFound means no entry matched.
	MatchNotFound MatchStatus = iota
	// MatchFound means exactly one entry matched.
	MatchFound
	// MatchAmbiguous means two or more entries matched.
	MatchAmbiguous
)

// MatchResult is the tagged result of Match.
type MatchResult[V any] struct {
	Status MatchStatus
	Search string
	// Entry is set when Status is MatchFound.
	Entry Entry[V]
	// Candidates lists every matching name, sorted, when Status is MatchAmbiguous.
	Candidates []string
}

// Err converts a NotFound or Ambiguous result into an invalid-input error.
// It returns nil for MatchFound.
func (m MatchResult[V]) Err() error {
	switch m.Status {
	case MatchFound:
		return nil
	case MatchAmbiguous:
		return apperrors.InvalidInput(
			"ambiguous identifier %q: matched %s. Note: you can use \"_\" to mark the beginning and/or end of the name",
			m.Search, quoteJoin(m.Candidates))
	default:
		return apperrors.InvalidInput("no matches found for %q", m.Search)
	}
}

// Match searches entries for search, ignoring case. The search term matches
// any name containing it; a leading '_' requires the name to start with the
// term and a trailing '_' requires it to end with it.
func Match[V any](entries []Entry[V], search string) MatchResult[V] {
	res := MatchResult[V]{Search: search}
	term := strings.ToLower(search)
	atStart := strings.HasPrefix(term, "_")
	if atStart {
		term = term[1:]
	}
	atEnd := strings.HasSuffix(term, "_")
	if atEnd {
		term = term[:len(term)-1]
	}

	var found []Entry[V]
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if !strings.Contains(name, term) {
			continue
		}
		if atStart && !strings.HasPrefix(name, term) {
			continue
		}
		if atEnd && !strings.HasSuffix(name, term) {
			continue
		}
		found = append(found, e)
	}

	switch len(found) {
	case 0:
		res.Status = MatchNotFound
	case 1:
		res.Status = MatchFound
		res.Entry = found[0]
	default:
		res.Status = MatchAmbiguous
		for _, e := range found {
			res.Candidates = append(res.Candidates, e.Name)
		}
		sort.Strings(res.Candidates)
	}
	return res
}

// Entries returns the entries of m sorted by name.
func Entries[V any](m map[string]V) []Entry[V] {
	out := make([]Entry[V], 0, len(m))
	for k, v := range m {
		out = append(out, Entry[V]{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return strings.Join(quoted, ", ")
}
