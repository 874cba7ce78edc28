package claim

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for a claim.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if no validation errors were found.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message from all validation errors.
func (r ValidationResult) Error() string {
	if r.Valid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// hexDigestPattern matches a lowercase hex SHA-256 digest.
var hexDigestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Validate checks a claim for structural problems: a missing description,
// evidence payloads without their required fields, thresholds or patterns
// that can never parse. Validation is a pre-flight lint; the verifier
// accepts any decodable claim and folds such problems into verdicts.
func Validate(c Claim) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(c.Description) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field: "description", Message: "required",
		})
	}

	for i, spec := range c.Evidence {
		validateEvidence(&result, i, spec)
	}

	return result
}

// validateEvidence checks one evidence item's required fields. The switch
// covers every kind.
func validateEvidence(result *ValidationResult, i int, spec EvidenceSpec) {
	field := func(name string) string {
		return fmt.Sprintf("evidence[%d].%s", i, name)
	}

	switch s := spec.(type) {
	case FileExists:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
	case FileWithHash:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
		if s.SHA256 == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("sha256"), Message: "required",
			})
		} else if !hexDigestPattern.MatchString(s.SHA256) {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("sha256"), Message: "must be 64 lowercase hex characters",
			})
		}
	case FileContains:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
		if s.Substring == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("substring"), Message: "required",
			})
		}
	case FileMatchesRegex:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
		if s.Pattern == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("pattern"), Message: "required",
			})
		} else if _, err := regexp.Compile(s.Pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("pattern"), Message: fmt.Sprintf("invalid pattern: %v", err),
			})
		}
	case JSONPathEquals:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
	case FileModifiedAfter:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
		if s.After == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("after"), Message: "required",
			})
		} else if _, err := time.Parse(time.RFC3339, s.After); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("after"), Message: fmt.Sprintf("not an RFC 3339 timestamp: %q", s.After),
			})
		}
	case DirectoryExists:
		if s.Path == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("path"), Message: "required",
			})
		}
	case CommandSucceeds:
		if s.Command == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("command"), Message: "required",
			})
		}
	case GitClean:
		// repo_path is optional; nothing to check.
	case GitCommitExists:
		if s.Commit == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("commit"), Message: "required",
			})
		}
	case GitBranchExists:
		if s.Branch == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("branch"), Message: "required",
			})
		}
	case EnvVarEquals:
		if s.Name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("name"), Message: "required",
			})
		}
	case Custom:
		if s.Name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field: field("name"), Message: "required",
			})
		}
	}
}
