package cli

import (
	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// suggestIDs returns the ids closest to query, best match first.
func suggestIDs(query string, ids []string) []string {
	if query == "" || len(ids) == 0 {
		return nil
	}
	matches := fuzzy.Find(query, ids)
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, ids[m.Index])
	}
	return out
}
