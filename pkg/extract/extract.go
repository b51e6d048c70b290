// Package extract finds email addresses in free text.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// emailPattern matches the common email shape: a local part of letters,
// digits and ._%+-, an @, domain labels of letters/digits/.-, and a TLD of
// at least two letters.
var emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)

// Emails returns every email-shaped substring of text, lowercased,
// deduplicated and sorted. Empty input yields an empty slice. The function
// is pure; it never fails.
func Emails(text string) []string {
	if text == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, match := range emailPattern.FindAllString(text, -1) {
		seen[strings.ToLower(match)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for email := range seen {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

// Merge unions several email lists into one lowercased, deduplicated,
// sorted list.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, email := range list {
			if email == "" {
				continue
			}
			seen[strings.ToLower(email)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for email := range seen {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}
