// Package followers parses Instagram "Download your information" exports
// into a set of handles. The export format has drifted across versions, so
// shape recognition is deliberately lenient: each known shape is tried in
// order, and an unrecognized document yields an empty set rather than an
// error. Only malformed JSON is reported as a failure.
package followers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"igcollector/pkg/errors"
)

// entry mirrors one relationship entry of the export.
type entry struct {
	StringListData []listItem `json:"string_list_data"`
}

type listItem struct {
	Value string `json:"value"`
}

// mappingKeys are the top-level keys a dict-shaped export may use for the
// followers list, in the order they are tried.
var mappingKeys = []string{"relationships_followers", "followers", "followers_list"}

// shapeMatchers are tried in order until one matches. Adding a future
// export shape means appending a matcher here.
var shapeMatchers = []func(data []byte) ([]string, bool){
	matchListShape,
	matchMappingShape,
}

// Parse extracts follower handles from a raw JSON export. Handles are
// stripped of a leading @, lowercased, deduplicated and sorted. Malformed
// JSON fails with an error wrapping errors.ErrParse; a valid document in an
// unknown shape returns an empty set.
func Parse(data []byte) ([]string, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid document", errors.ErrParse)
	}

	for _, match := range shapeMatchers {
		if handles, ok := match(data); ok {
			return normalize(handles), nil
		}
	}
	return []string{}, nil
}

// matchListShape handles a top-level list of relationship entries.
func matchListShape(data []byte) ([]string, bool) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return valuesOf(entries), true
}

// matchMappingShape handles a top-level object holding the entries under a
// followers-like key.
func matchMappingShape(data []byte) ([]string, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}

	var handles []string
	for _, key := range mappingKeys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		var entries []entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		handles = append(handles, valuesOf(entries)...)
	}
	return handles, true
}

func valuesOf(entries []entry) []string {
	var values []string
	for _, e := range entries {
		for _, item := range e.StringListData {
			values = append(values, item.Value)
		}
	}
	return values
}

func normalize(handles []string) []string {
	seen := make(map[string]struct{})
	for _, h := range handles {
		h = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
		if h == "" {
			continue
		}
		seen[h] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
