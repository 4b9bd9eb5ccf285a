// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/msgidx/msgidx/internal/log"
)

var lengthSpec = regexp.MustCompile(`-?\d+`)

// Attr is one column of "msgidx ls" output. Key is a dotted path into a row
// of the listed document, for example msg.value.
type Attr struct {
	// The dotted path to extract from each row.
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs used only for filtering and sorting.
	Include bool `yaml:"include" json:"Include"`
	// The key used in json/yaml output and as the column title.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec applied to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attr's transform spec to value. Strings honour case
// (l/u) and length (N truncates, -N elides the middle) specs; numbers honour
// the thousands separator spec (n).
func (a *Attr) Transform(value interface{}) interface{} {
	if f, ok := value.(float64); ok {
		if strings.Contains(a.TransformSpec, "n") && f == math.Trunc(f) {
			return humanize.Comma(int64(f))
		}
		return value
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// The last case letter wins so that an attr's own spec overrides a global
	// one prepended to it.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	if a.TransformSpec == "" {
		return result
	}

	match := lengthSpec.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if len(result) <= abs {
		return result
	}
	if l < 0 {
		keep := max(abs/2-1, 0)
		result = result[:keep] + ".." + result[len(result)-keep:]
		log.Tracef("length middle: result=%s", result)
	} else {
		result = result[:l]
		log.Tracef("length trunc: result=%s", result)
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses a comma separated --attrs value and merges it into the list.
// Each spec is key[:outputKey[:transform]]. A leading ! keeps the attr for
// filtering and sorting only; the key * carries a global transform.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[keyIdx]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = strings.TrimPrefix(attr.Key[1:], ".")
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute key in %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		// A bare key outputs under its last path segment.
		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = attr.Key
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying a default attr updates it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the * attr, if any, to
// every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec prepended: spec=%s", spec)

	return nil
}

// String renders the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
