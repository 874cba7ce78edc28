// Package claim defines the data model for verifiable claims: evidence
// specs describing observable conditions, the four-valued verdict, and the
// report produced when a claim is verified.
//
// A Claim asserts that some action was performed. Its evidence list names
// the conditions that should hold if the assertion is true. Verification
// (pkg/verify) checks each item against the machine and folds the outcomes
// into one overall verdict. Claims round-trip losslessly through JSON and
// can also be loaded from YAML.
package claim

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Claim asserts that some action was performed, together with the evidence
// that should exist if it was. Claims are constructed once and never
// mutated; the builders return copies.
type Claim struct {
	// ID identifies the claim. When not supplied it is derived from the
	// description and timestamp: a short hex digest prefix, practically
	// unique rather than cryptographically strong.
	ID string `json:"id"`

	// Description states, in human terms, what is claimed to have happened.
	Description string `json:"description"`

	// Timestamp records when the claim was made.
	Timestamp time.Time `json:"timestamp"`

	// Evidence lists the conditions backing the claim, in declaration
	// order. Order is preserved through verification.
	Evidence []EvidenceSpec `json:"evidence"`

	// Source optionally records who or what made the claim.
	Source string `json:"source,omitempty"`
}

// New creates a claim with a derived ID and the current time.
func New(description string) Claim {
	now := time.Now().UTC()
	return Claim{
		ID:          deriveID(description, now),
		Description: description,
		Timestamp:   now,
	}
}

// WithEvidence returns a copy of the claim with one more evidence item
// appended. The receiver is left untouched.
func (c Claim) WithEvidence(spec EvidenceSpec) Claim {
	evidence := make([]EvidenceSpec, 0, len(c.Evidence)+1)
	evidence = append(evidence, c.Evidence...)
	evidence = append(evidence, spec)
	c.Evidence = evidence
	return c
}

// WithSource returns a copy of the claim with its source set.
func (c Claim) WithSource(source string) Claim {
	c.Source = source
	return c
}

// deriveID hashes the description together with the creation time, in unix
// seconds, and keeps the first eight bytes of the digest.
func deriveID(description string, ts time.Time) string {
	h := sha256.New()
	h.Write([]byte(description))
	var secs [8]byte
	binary.LittleEndian.PutUint64(secs[:], uint64(ts.Unix()))
	h.Write(secs[:])
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// claimWire mirrors Claim with the evidence list in tagged wire form.
type claimWire struct {
	ID          string            `json:"id,omitempty"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
	Evidence    []json.RawMessage `json:"evidence"`
	Source      string            `json:"source,omitempty"`
}

// MarshalJSON encodes the claim with each evidence item in its tagged wire
// form.
func (c Claim) MarshalJSON() ([]byte, error) {
	w := claimWire{
		ID:          c.ID,
		Description: c.Description,
		Timestamp:   c.Timestamp,
		Evidence:    make([]json.RawMessage, len(c.Evidence)),
		Source:      c.Source,
	}
	for i, spec := range c.Evidence {
		data, err := MarshalEvidence(spec)
		if err != nil {
			return nil, fmt.Errorf("evidence[%d]: %w", i, err)
		}
		w.Evidence[i] = data
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a claim, defaulting the ID and timestamp when the
// input omits them. A present but malformed timestamp is a decode error.
func (c *Claim) UnmarshalJSON(data []byte) error {
	var w claimWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("parse claim: %w", err)
	}

	var evidence []EvidenceSpec
	if len(w.Evidence) > 0 {
		evidence = make([]EvidenceSpec, len(w.Evidence))
		for i, raw := range w.Evidence {
			spec, err := UnmarshalEvidence(raw)
			if err != nil {
				return fmt.Errorf("evidence[%d]: %w", i, err)
			}
			evidence[i] = spec
		}
	}

	ts := w.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	id := w.ID
	if id == "" {
		id = deriveID(w.Description, ts)
	}

	*c = Claim{
		ID:          id,
		Description: w.Description,
		Timestamp:   ts,
		Evidence:    evidence,
		Source:      w.Source,
	}
	return nil
}
