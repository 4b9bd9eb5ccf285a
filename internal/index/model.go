// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package index

// JSON keys of index documents and message entries.
const (
	KeyVersion      = "version"
	KeyArtifact     = "artifact"
	KeyTotal        = "total"
	KeyMessages     = "messages"
	KeyFilePath     = "filePath"
	KeyProjectCode  = "projectCode"
	KeyMessage      = "msg"
	KeyID           = "id"
	KeyLog          = "log"
	KeyMethod       = "method"
	KeySuppressions = "suppressions"
	KeyDescription  = "desc"
)

// Special identifiers. Both may repeat freely within one document.
const (
	// IDUnspecified marks a message declared without an id.
	IDUnspecified = 0
	// IDInherited marks a message inheriting the id of a same-named message.
	IDInherited = -1
)

// Index is one loaded index document.
type Index struct {
	Version  string  `json:"version"`
	Artifact string  `json:"artifact"`
	Total    int     `json:"total"`
	FilePath string  `json:"filePath"`
	Messages []Entry `json:"messages"`
}

// Key returns the composite (version, artifact) identity of the document.
func (i Index) Key() Key {
	return Key{Version: i.Version, Artifact: i.Artifact}
}

// Key is the composite identity of an index document.
type Key struct {
	Version  string
	Artifact string
}

// Less orders keys by version, then artifact.
func (k Key) Less(o Key) bool {
	if k.Version != o.Version {
		return k.Version < o.Version
	}
	return k.Artifact < o.Artifact
}

// Entry is one message entry kept in its decoded JSON form so that every
// field, including ones msgidx does not know about, takes part in equality.
type Entry map[string]any

// ProjectCode returns the namespace of the entry.
func (e Entry) ProjectCode() string {
	s, _ := e[KeyProjectCode].(string)
	return s
}

// ID returns msg.id. Entries are validated on load, so a missing id reads as
// IDUnspecified.
func (e Entry) ID() int {
	msg, _ := e[KeyMessage].(map[string]any)
	f, _ := msg[KeyID].(float64)
	return int(f)
}

// Suppressions returns the suppression tokens declared on the entry.
// Non-string tokens are ignored.
func (e Entry) Suppressions() []string {
	raw, _ := e[KeySuppressions].([]any)
	tokens := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	if e == nil {
		return nil
	}
	return Entry(cloneObject(e))
}

func cloneObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case Entry:
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Lookup returns the value at the given field path, or nil when any segment
// is missing or not an object.
func (e Entry) Lookup(path ...string) any {
	var cur any = map[string]any(e)
	for _, segment := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[segment]; !ok {
			return nil
		}
	}
	return cur
}

// Text returns the string at the given field path, or "" when it is absent
// or not a string.
func (e Entry) Text(path ...string) string {
	s, _ := e.Lookup(path...).(string)
	return s
}
