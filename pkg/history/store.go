// Package history persists verification reports in a local bbolt database
// so past verdicts can be listed, re-read, and pruned.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

const bucketReports = "reports"

// keyTimeLayout is RFC 3339 with fixed-width nanoseconds, so that the
// lexicographic key order bbolt maintains is also chronological.
const keyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a bbolt-backed, append-only log of verification reports, keyed
// by verification time.
type Store struct {
	db *bolt.DB
}

// Open creates or opens a report log at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketReports))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}

	return &Store{db: db}, nil
}

// reportKey orders reports chronologically and keeps same-instant reports
// for different claims distinct.
func reportKey(report claim.VerificationReport) []byte {
	return []byte(report.VerifiedAt.UTC().Format(keyTimeLayout) + "|" + report.Claim.ID)
}

// Append stores one report.
func (s *Store) Append(report claim.VerificationReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketReports)).Put(reportKey(report), data)
	})
}

// Recent returns the most recent reports, newest first. A limit of zero or
// less returns everything.
func (s *Store) Recent(limit int) ([]claim.VerificationReport, error) {
	var reports []claim.VerificationReport
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketReports)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(reports) == limit {
				break
			}
			var report claim.VerificationReport
			if err := json.Unmarshal(v, &report); err != nil {
				return fmt.Errorf("unmarshal report %s: %w", string(k), err)
			}
			reports = append(reports, report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ForClaim returns every stored report for one claim ID, newest first.
func (s *Store) ForClaim(claimID string) ([]claim.VerificationReport, error) {
	suffix := "|" + claimID
	var reports []claim.VerificationReport
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketReports)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if !strings.HasSuffix(string(k), suffix) {
				continue
			}
			var report claim.VerificationReport
			if err := json.Unmarshal(v, &report); err != nil {
				return fmt.Errorf("unmarshal report %s: %w", string(k), err)
			}
			reports = append(reports, report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Prune deletes reports verified before the cutoff and reports how many
// were removed.
func (s *Store) Prune(before time.Time) (int, error) {
	cutoff := before.UTC().Format(keyTimeLayout)
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketReports))

		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil && string(k) < cutoff; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}

		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(keys)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Trim deletes the oldest reports until at most max remain and reports how
// many were removed. A max of zero or less leaves the store untouched.
func (s *Store) Trim(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketReports))

		total := 0
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			total++
		}
		excess := total - max
		if excess <= 0 {
			return nil
		}

		var keys [][]byte
		for k, _ := c.First(); k != nil && len(keys) < excess; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}

		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(keys)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
