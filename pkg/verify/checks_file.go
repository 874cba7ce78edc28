package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/jsonpath"
)

func checkFileExists(s claim.FileExists) (claim.Verdict, string) {
	if _, err := os.Stat(s.Path); err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("File not found: %s", s.Path)
	}
	return claim.VerdictConfirmed, fmt.Sprintf("File exists: %s", s.Path)
}

func checkFileWithHash(s claim.FileWithHash) (claim.Verdict, string) {
	contents, err := os.ReadFile(s.Path)
	if err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("Cannot read file: %v", err)
	}
	sum := sha256.Sum256(contents)
	actual := hex.EncodeToString(sum[:])
	if actual != s.SHA256 {
		return claim.VerdictRefuted, fmt.Sprintf("Hash mismatch: expected %s, got %s", s.SHA256, actual)
	}
	return claim.VerdictConfirmed, "Hash matches"
}

func checkFileContains(s claim.FileContains) (claim.Verdict, string) {
	contents, err := os.ReadFile(s.Path)
	if err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("Cannot read file: %v", err)
	}
	if !strings.Contains(string(contents), s.Substring) {
		return claim.VerdictRefuted, "Substring not found"
	}
	return claim.VerdictConfirmed, "Substring found"
}

// checkFileMatchesRegex compiles before reading: a bad pattern means the
// check cannot run at all, while an unreadable file refutes the claim.
func checkFileMatchesRegex(s claim.FileMatchesRegex) (claim.Verdict, string) {
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return claim.VerdictUnverifiable, fmt.Sprintf("Invalid pattern: %v", err)
	}
	contents, err := os.ReadFile(s.Path)
	if err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("Cannot read file: %v", err)
	}
	if !re.Match(contents) {
		return claim.VerdictRefuted, "Pattern not matched"
	}
	return claim.VerdictConfirmed, "Pattern matched"
}

// checkJSONPath treats an absent path as a failed assertion, not an
// inability to check.
func checkJSONPath(s claim.JSONPathEquals) (claim.Verdict, string) {
	contents, err := os.ReadFile(s.Path)
	if err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("Cannot read file: %v", err)
	}
	var doc any
	if err := json.Unmarshal(contents, &doc); err != nil {
		return claim.VerdictRefuted, fmt.Sprintf("Cannot parse JSON: %v", err)
	}
	actual, ok := jsonpath.Resolve(doc, s.JSONPath)
	if !ok {
		return claim.VerdictRefuted, fmt.Sprintf("Path not found: %s", s.JSONPath)
	}
	expected := normalizeJSON(s.Expected)
	if !reflect.DeepEqual(expected, actual) {
		return claim.VerdictRefuted, fmt.Sprintf("Value mismatch: expected %s, got %s", renderJSON(expected), renderJSON(actual))
	}
	return claim.VerdictConfirmed, "Value matches"
}

func checkFileModifiedAfter(s claim.FileModifiedAfter) (claim.Verdict, string) {
	after, err := time.Parse(time.RFC3339, s.After)
	if err != nil {
		return claim.VerdictUnverifiable, fmt.Sprintf("Invalid timestamp: %q", s.After)
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return claim.VerdictRefuted, fmt.Sprintf("File not found: %s", s.Path)
		}
		return claim.VerdictUnverifiable, fmt.Sprintf("Cannot stat file: %v", err)
	}
	mtime := info.ModTime()
	if !mtime.After(after) {
		return claim.VerdictRefuted, fmt.Sprintf("Modified at %s, not after %s",
			mtime.UTC().Format(time.RFC3339), after.UTC().Format(time.RFC3339))
	}
	return claim.VerdictConfirmed, fmt.Sprintf("Modified at %s", mtime.UTC().Format(time.RFC3339))
}

func checkDirectoryExists(s claim.DirectoryExists) (claim.Verdict, string) {
	info, err := os.Stat(s.Path)
	if err != nil || !info.IsDir() {
		return claim.VerdictRefuted, fmt.Sprintf("Directory not found: %s", s.Path)
	}
	return claim.VerdictConfirmed, fmt.Sprintf("Directory exists: %s", s.Path)
}

// normalizeJSON re-encodes a value through JSON so programmatically built
// expectations (ints, nested structs) compare structurally against decoded
// documents.
func normalizeJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func renderJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
