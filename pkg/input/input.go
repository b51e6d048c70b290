// Package input turns user-supplied handle lists into normalized batch
// input.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"igcollector/pkg/instagram"
)

// FromLines parses newline-separated input where each line is a handle, an
// @-prefixed handle, or a full profile URL. The result is normalized,
// deduplicated and sorted.
func FromLines(text string) []string {
	var handles []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		handles = append(handles, line)
	}
	return normalize(handles)
}

// FromCSV parses tabular input with a column named "username". Column
// matching is case-insensitive. A missing username column is an error.
func FromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "username") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("CSV input must include a %q column", "username")
	}

	var handles []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if col < len(row) {
			handles = append(handles, row[col])
		}
	}
	return normalize(handles), nil
}

func normalize(raw []string) []string {
	seen := make(map[string]struct{})
	for _, r := range raw {
		h := instagram.UsernameFromInput(r)
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
