package claim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a single claim from a JSON or YAML file. ${VAR} references in
// the file are replaced with environment values before parsing, so evidence
// paths can be written portably.
func Load(path string) (Claim, error) {
	data, err := readClaimFile(path)
	if err != nil {
		return Claim{}, err
	}
	var c Claim
	if err := json.Unmarshal(data, &c); err != nil {
		return Claim{}, fmt.Errorf("parse claim file %s: %w", path, err)
	}
	return c, nil
}

// LoadAll reads a list of claims from a JSON array or YAML sequence.
func LoadAll(path string) ([]Claim, error) {
	data, err := readClaimFile(path)
	if err != nil {
		return nil, err
	}
	var claims []Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("parse claim file %s: %w", path, err)
	}
	return claims, nil
}

// readClaimFile loads the raw bytes, interpolates environment variables,
// and converts YAML input to JSON so both encodings share one decode path.
func readClaimFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claim file: %w", err)
	}
	text := interpolateEnvVars(string(data))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(path, []byte(text))
	default:
		return []byte(text), nil
	}
}

func yamlToJSON(path string, data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse claim file %s: %w", path, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert claim file %s: %w", path, err)
	}
	return out, nil
}

// envVarPattern matches ${VAR_NAME} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnvVars replaces ${VAR_NAME} references with values from the
// environment. Unset references are left as-is.
func interpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}
