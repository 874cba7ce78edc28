package claim

import (
	"encoding/json"
	"fmt"
)

// Wire tags for every evidence kind. The set is closed: decoding an
// unknown tag is an error, never a verdict.
const (
	KindFileExists        = "FileExists"
	KindFileWithHash      = "FileWithHash"
	KindFileContains      = "FileContains"
	KindFileMatchesRegex  = "FileMatchesRegex"
	KindJSONPathEquals    = "JsonPathEquals"
	KindFileModifiedAfter = "FileModifiedAfter"
	KindDirectoryExists   = "DirectoryExists"
	KindCommandSucceeds   = "CommandSucceeds"
	KindGitClean          = "GitClean"
	KindGitCommitExists   = "GitCommitExists"
	KindGitBranchExists   = "GitBranchExists"
	KindEnvVarEquals      = "EnvVarEquals"
	KindCustom            = "Custom"
)

// EvidenceSpec is a single observable condition that should hold if a claim
// is true. Specs are pure data: construction and equality only. Each kind
// carries exactly the fields its check needs and is checked independently
// of every other item.
//
// The wire form is an adjacently tagged object:
//
//	{ "type": "FileExists", "spec": { "path": "/tmp/out.txt" } }
type EvidenceSpec interface {
	// Kind returns the wire tag for this evidence kind.
	Kind() string

	// sealed restricts implementations to this package, keeping the kind
	// set closed so the verifier's dispatch stays exhaustive.
	sealed()
}

// FileExists asserts that a path exists on the filesystem.
type FileExists struct {
	Path string `json:"path"`
}

func (FileExists) Kind() string { return KindFileExists }
func (FileExists) sealed()      {}

// FileWithHash asserts that a file's contents hash to an exact SHA-256
// digest, hex encoded.
type FileWithHash struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

func (FileWithHash) Kind() string { return KindFileWithHash }
func (FileWithHash) sealed()      {}

// FileContains asserts that a text file contains a substring anywhere.
type FileContains struct {
	Path      string `json:"path"`
	Substring string `json:"substring"`
}

func (FileContains) Kind() string { return KindFileContains }
func (FileContains) sealed()      {}

// FileMatchesRegex asserts that a regular expression matches somewhere in a
// text file.
type FileMatchesRegex struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern"`
}

func (FileMatchesRegex) Kind() string { return KindFileMatchesRegex }
func (FileMatchesRegex) sealed()      {}

// JSONPathEquals asserts that a JSON document on disk holds the expected
// value at a dotted/bracketed path (see pkg/jsonpath for the path syntax).
type JSONPathEquals struct {
	Path     string `json:"path"`
	JSONPath string `json:"json_path"`
	Expected any    `json:"expected"`
}

func (JSONPathEquals) Kind() string { return KindJSONPathEquals }
func (JSONPathEquals) sealed()      {}

// FileModifiedAfter asserts that a file's last modification time is
// strictly later than the given threshold. The threshold stays a string so
// a malformed timestamp surfaces as a check verdict, not a decode error.
type FileModifiedAfter struct {
	Path  string `json:"path"`
	After string `json:"after"`
}

func (FileModifiedAfter) Kind() string { return KindFileModifiedAfter }
func (FileModifiedAfter) sealed()      {}

// DirectoryExists asserts that a path exists and is a directory.
type DirectoryExists struct {
	Path string `json:"path"`
}

func (DirectoryExists) Kind() string { return KindDirectoryExists }
func (DirectoryExists) sealed()      {}

// CommandSucceeds asserts that a command, run without shell interpolation,
// exits successfully.
type CommandSucceeds struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func (CommandSucceeds) Kind() string { return KindCommandSucceeds }
func (CommandSucceeds) sealed()      {}

// GitClean asserts that a repository's working tree has no pending changes.
// RepoPath defaults to the current directory.
type GitClean struct {
	RepoPath string `json:"repo_path,omitempty"`
}

func (GitClean) Kind() string { return KindGitClean }
func (GitClean) sealed()      {}

// GitCommitExists asserts that a commit is present in a repository.
type GitCommitExists struct {
	RepoPath string `json:"repo_path,omitempty"`
	Commit   string `json:"commit"`
}

func (GitCommitExists) Kind() string { return KindGitCommitExists }
func (GitCommitExists) sealed()      {}

// GitBranchExists asserts that a local branch is present in a repository.
type GitBranchExists struct {
	RepoPath string `json:"repo_path,omitempty"`
	Branch   string `json:"branch"`
}

func (GitBranchExists) Kind() string { return KindGitBranchExists }
func (GitBranchExists) sealed()      {}

// EnvVarEquals asserts that an environment variable is set to an exact
// value.
type EnvVarEquals struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (EnvVarEquals) Kind() string { return KindEnvVarEquals }
func (EnvVarEquals) sealed()      {}

// Custom defers to a checker registered by name on the verifier. Params are
// passed through untouched.
type Custom struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

func (Custom) Kind() string { return KindCustom }
func (Custom) sealed()      {}

// evidenceEnvelope is the adjacently tagged wire form shared by all kinds.
type evidenceEnvelope struct {
	Type string          `json:"type"`
	Spec json.RawMessage `json:"spec"`
}

// MarshalEvidence encodes a spec into its tagged wire form.
func MarshalEvidence(spec EvidenceSpec) ([]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("marshal evidence: nil spec")
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal %s spec: %w", spec.Kind(), err)
	}
	return json.Marshal(evidenceEnvelope{Type: spec.Kind(), Spec: payload})
}

// UnmarshalEvidence decodes one tagged evidence object.
func UnmarshalEvidence(data []byte) (EvidenceSpec, error) {
	var env evidenceEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse evidence: %w", err)
	}
	return decodeEvidence(env)
}

// decodeEvidence maps a wire envelope onto its concrete kind. The switch is
// the closed-set boundary: every kind appears here and nowhere is a tag
// invented at runtime.
func decodeEvidence(env evidenceEnvelope) (EvidenceSpec, error) {
	payload := env.Spec
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var (
		spec EvidenceSpec
		err  error
	)
	switch env.Type {
	case KindFileExists:
		var v FileExists
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindFileWithHash:
		var v FileWithHash
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindFileContains:
		var v FileContains
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindFileMatchesRegex:
		var v FileMatchesRegex
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindJSONPathEquals:
		var v JSONPathEquals
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindFileModifiedAfter:
		var v FileModifiedAfter
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindDirectoryExists:
		var v DirectoryExists
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindCommandSucceeds:
		var v CommandSucceeds
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindGitClean:
		var v GitClean
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindGitCommitExists:
		var v GitCommitExists
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindGitBranchExists:
		var v GitBranchExists
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindEnvVarEquals:
		var v EnvVarEquals
		err = json.Unmarshal(payload, &v)
		spec = v
	case KindCustom:
		var v Custom
		err = json.Unmarshal(payload, &v)
		spec = v
	case "":
		return nil, fmt.Errorf(`evidence object missing "type"`)
	default:
		return nil, fmt.Errorf("unknown evidence type %q", env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s spec: %w", env.Type, err)
	}
	return spec, nil
}
