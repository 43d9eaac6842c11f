package timezones

import (
	"sort"
	"strings"
)

// Search filters zones by a case-insensitive substring match, ranking prefix
// matches first. A non-positive limit returns every match.
func Search(zones []string, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		if limit > 0 && len(zones) > limit {
			return append([]string{}, zones[:limit]...)
		}
		return append([]string{}, zones...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

type matchedZone struct {
	name     string
	isPrefix bool
}
