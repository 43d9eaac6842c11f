package timezones

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadZones(t *testing.T) {
	input := strings.NewReader(`
# comment
Europe/Madrid
America/New_York

Europe/Madrid
UTC
`)
	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"America/New_York", "Europe/Madrid", "UTC"}
	if diff := cmp.Diff(want, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadZones_NilReader(t *testing.T) {
	if _, err := LoadZones(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestSearch_PrefixRanksFirst(t *testing.T) {
	zones := []string{"America/New_York", "Asia/Yerevan", "Europe/York_Fake"}
	got := Search(zones, "y", 10)
	if len(got) == 0 {
		t.Fatalf("expected matches")
	}
	// No zone starts with "y"; substring matches keep sorted order.
	want := []string{"America/New_York", "Asia/Yerevan", "Europe/York_Fake"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	got = Search(zones, "America", 10)
	if diff := cmp.Diff([]string{"America/New_York"}, got); diff != "" {
		t.Fatalf("prefix search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_Limit(t *testing.T) {
	zones := []string{"A/A", "A/B", "A/C"}
	if got := Search(zones, "A", 2); len(got) != 2 {
		t.Fatalf("limit ignored: %v", got)
	}
	if got := Search(zones, "", 0); len(got) != 3 {
		t.Fatalf("unlimited empty query must return all: %v", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid("UTC") {
		t.Fatalf("UTC must be valid")
	}
	if Valid("Nope/Zone") {
		t.Fatalf("made-up zone must be invalid")
	}
	if Valid("") {
		t.Fatalf("empty zone must be invalid")
	}
}
