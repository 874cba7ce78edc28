// Package jsonpath navigates parsed JSON trees with a small dotted-path
// language: ".a.b[1]" descends into field a, then field b, then index 1.
package jsonpath

import (
	"strconv"
	"strings"
)

// segment is one dot-separated path element: an optional field name
// followed by zero or more array indices, e.g. "b[1][0]".
type segment struct {
	field   string
	indices []int
}

// Resolve walks doc along path and returns the value found there. The
// boolean is false whenever the path does not resolve: a missing field, an
// out-of-range or negative index, a type mismatch, or a segment that
// cannot be read as a field plus indices. All of these look the same to
// the caller. Empty and repeated separators are skipped, and the empty
// path resolves to doc itself. doc is expected in encoding/json form
// (map[string]any, []any, float64, string, bool, nil).
func Resolve(doc any, path string) (any, bool) {
	segs, ok := parsePath(path)
	if !ok {
		return nil, false
	}

	current := doc
	for _, seg := range segs {
		if seg.field != "" {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			val, ok := obj[seg.field]
			if !ok {
				return nil, false
			}
			current = val
		}
		for _, idx := range seg.indices {
			arr, ok := current.([]any)
			if !ok {
				return nil, false
			}
			if idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// parsePath splits a path on dots. Empty parts are skipped so leading,
// trailing, and doubled separators are harmless.
func parsePath(path string) ([]segment, bool) {
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		seg, ok := parseSegment(part)
		if !ok {
			return nil, false
		}
		segs = append(segs, seg)
	}
	return segs, true
}

// parseSegment reads an optional field name followed by bracketed integer
// indices. Anything else, an unclosed bracket, non-integer index text, a
// stray close bracket, makes the segment malformed.
func parseSegment(part string) (segment, bool) {
	open := strings.IndexByte(part, '[')
	if open == -1 {
		if strings.IndexByte(part, ']') != -1 {
			return segment{}, false
		}
		return segment{field: part}, true
	}

	seg := segment{field: part[:open]}
	rest := part[open:]
	for rest != "" {
		if rest[0] != '[' {
			return segment{}, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return segment{}, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil || idx < 0 {
			return segment{}, false
		}
		seg.indices = append(seg.indices, idx)
		rest = rest[end+1:]
	}
	return seg, true
}
