package timezones

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// LoadZones reads newline-separated IANA zone names, skipping blanks,
// comments and duplicates, and returns them sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 512)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return zones, nil
}

// Valid reports whether name resolves against the host timezone database.
func Valid(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	_, err := time.LoadLocation(trimmed)
	return err == nil
}
