package claim

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestNew(t *testing.T) {
	c := New("deployed the service")

	if c.Description != "deployed the service" {
		t.Errorf("Description = %q, want %q", c.Description, "deployed the service")
	}
	if !idPattern.MatchString(c.ID) {
		t.Errorf("ID = %q, want 16 lowercase hex characters", c.ID)
	}
	if c.Timestamp.IsZero() {
		t.Error("Timestamp is zero, want current time")
	}
	if len(c.Evidence) != 0 {
		t.Errorf("Evidence has %d items, want 0", len(c.Evidence))
	}
	if c.Source != "" {
		t.Errorf("Source = %q, want empty", c.Source)
	}
}

func TestDeriveID(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	a := deriveID("wrote the tests", ts)
	b := deriveID("wrote the tests", ts)
	if a != b {
		t.Errorf("same inputs gave different IDs: %q vs %q", a, b)
	}
	if !idPattern.MatchString(a) {
		t.Errorf("deriveID = %q, want 16 lowercase hex characters", a)
	}

	if c := deriveID("wrote the docs", ts); c == a {
		t.Errorf("different descriptions gave the same ID %q", c)
	}
	if d := deriveID("wrote the tests", ts.Add(time.Second)); d == a {
		t.Errorf("different timestamps gave the same ID %q", d)
	}
}

func TestWithEvidence(t *testing.T) {
	base := New("created the output file")

	one := base.WithEvidence(FileExists{Path: "/tmp/out.txt"})
	two := one.WithEvidence(FileContains{Path: "/tmp/out.txt", Substring: "done"})

	if len(base.Evidence) != 0 {
		t.Errorf("base claim gained %d evidence items, want 0", len(base.Evidence))
	}
	if len(one.Evidence) != 1 {
		t.Fatalf("first copy has %d evidence items, want 1", len(one.Evidence))
	}
	if len(two.Evidence) != 2 {
		t.Fatalf("second copy has %d evidence items, want 2", len(two.Evidence))
	}
	if two.Evidence[0].Kind() != KindFileExists {
		t.Errorf("Evidence[0].Kind() = %q, want %q", two.Evidence[0].Kind(), KindFileExists)
	}
	if two.Evidence[1].Kind() != KindFileContains {
		t.Errorf("Evidence[1].Kind() = %q, want %q", two.Evidence[1].Kind(), KindFileContains)
	}
}

func TestWithSource(t *testing.T) {
	c := New("ran the migration").WithSource("deploy-bot")
	if c.Source != "deploy-bot" {
		t.Errorf("Source = %q, want %q", c.Source, "deploy-bot")
	}
}

func TestClaimRoundTrip(t *testing.T) {
	original := Claim{
		ID:          "a1b2c3d4e5f60718",
		Description: "finished the release",
		Timestamp:   time.Date(2024, 6, 1, 12, 30, 45, 123456789, time.UTC),
		Evidence: []EvidenceSpec{
			FileExists{Path: "/tmp/release.txt"},
			JSONPathEquals{Path: "/tmp/meta.json", JSONPath: ".version", Expected: "1.2.0"},
			CommandSucceeds{Command: "true", Args: []string{"--quiet"}},
		},
		Source: "release-bot",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Claim
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("claim changed across round trip (-want +got):\n%s", diff)
	}
}

func TestClaimUnmarshalDefaults(t *testing.T) {
	raw := `{
		"description": "set up the database",
		"evidence": [
			{"type": "FileExists", "spec": {"path": "/var/db/data.db"}}
		]
	}`

	var c Claim
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !idPattern.MatchString(c.ID) {
		t.Errorf("defaulted ID = %q, want 16 lowercase hex characters", c.ID)
	}
	if c.Timestamp.IsZero() {
		t.Error("defaulted Timestamp is zero, want current time")
	}
	if want := deriveID(c.Description, c.Timestamp); c.ID != want {
		t.Errorf("ID = %q, want %q derived from description and timestamp", c.ID, want)
	}
	if len(c.Evidence) != 1 {
		t.Fatalf("Evidence has %d items, want 1", len(c.Evidence))
	}
}

func TestClaimUnmarshalKeepsExplicitFields(t *testing.T) {
	raw := `{
		"id": "00112233445566ff",
		"description": "tagged the build",
		"timestamp": "2024-03-01T08:00:00Z",
		"evidence": [],
		"source": "ci"
	}`

	var c Claim
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if c.ID != "00112233445566ff" {
		t.Errorf("ID = %q, want %q", c.ID, "00112233445566ff")
	}
	want := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	if !c.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", c.Timestamp, want)
	}
	if c.Source != "ci" {
		t.Errorf("Source = %q, want %q", c.Source, "ci")
	}
}

func TestClaimUnmarshalBadTimestamp(t *testing.T) {
	raw := `{"description": "x", "timestamp": "yesterday", "evidence": []}`

	var c Claim
	err := json.Unmarshal([]byte(raw), &c)
	if err == nil {
		t.Fatal("Unmarshal succeeded, want error for malformed timestamp")
	}
	if !strings.Contains(err.Error(), "parse claim") {
		t.Errorf("error = %q, want mention of claim parsing", err)
	}
}
