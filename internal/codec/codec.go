// Package codec turns stored snapshot strings into typed collections and back.
//
// Decoding never fails: absent, unparseable and wrongly shaped input all fall
// back to a caller-supplied default, and the reason is reported through
// Status so callers can log it.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Status tags the outcome of a decode.
type Status int

const (
	// Valid means the stored data was used (possibly with rejected elements dropped).
	Valid Status = iota
	// Absent means nothing was stored under the key.
	Absent
	// Unparseable means the stored string was not JSON.
	Unparseable
	// WrongShape means the JSON was not the expected container (array or object).
	WrongShape
	// NoUsableData means the container had elements but none passed validation.
	NoUsableData
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Absent:
		return "absent"
	case Unparseable:
		return "unparseable"
	case WrongShape:
		return "wrong shape"
	case NoUsableData:
		return "no usable data"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// FellBack reports whether the default collection was substituted.
func (s Status) FellBack() bool {
	return s != Valid
}

// Shape validates one raw element and converts it to T.
type Shape[T any] func(raw json.RawMessage) (T, error)

// ErrNotObject is returned by Object for JSON values that are not objects.
var ErrNotObject = errors.New("element is not an object")

// Object decodes raw as a JSON object and checks it against rule.
func Object(raw json.RawMessage, rule validation.MapRule) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	if err := validation.Validate(m, rule); err != nil {
		return nil, err
	}
	return m, nil
}

// ObjectShape builds a Shape that checks rule and then unmarshals into T.
func ObjectShape[T any](rule validation.MapRule) Shape[T] {
	return func(raw json.RawMessage) (T, error) {
		var out T
		if _, err := Object(raw, rule); err != nil {
			return out, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return out, err
		}
		return out, nil
	}
}

// ListOptions configures DecodeList.
type ListOptions[T any] struct {
	Shape    Shape[T]
	Fallback func() []T
	// Keep, when set, runs after shape filtering and drops elements it rejects.
	Keep func(T) bool
	// ID, when set, keys elements for duplicate detection. Only the first
	// element with a given id is kept; later ones count as Dropped.
	ID func(T) string
	// EmptyFallsBack substitutes Fallback for a stored empty array.
	EmptyFallsBack bool
}

// ListResult is the tagged outcome of DecodeList.
type ListResult[T any] struct {
	Items   []T
	Status  Status
	Dropped int // elements rejected by the shape or repeating an id
	Pruned  int // elements rejected by Keep
}

func fallbackList[T any](fn func() []T) []T {
	if fn == nil {
		return []T{}
	}
	items := fn()
	if items == nil {
		return []T{}
	}
	return items
}

// DecodeList decodes a JSON array snapshot. present is false when the store
// has nothing under the key; an empty string counts as absent too.
func DecodeList[T any](raw string, present bool, opts ListOptions[T]) ListResult[T] {
	if !present || strings.TrimSpace(raw) == "" {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: Absent}
	}

	var top any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: Unparseable}
	}
	if _, ok := top.([]any); !ok {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: WrongShape}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: Unparseable}
	}

	if len(elems) == 0 && opts.EmptyFallsBack {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: NoUsableData}
	}

	res := ListResult[T]{Items: make([]T, 0, len(elems)), Status: Valid}
	seen := make(map[string]bool, len(elems))
	for _, elem := range elems {
		item, err := opts.Shape(elem)
		if err != nil {
			res.Dropped++
			continue
		}
		if opts.ID != nil {
			id := opts.ID(item)
			if seen[id] {
				res.Dropped++
				continue
			}
			seen[id] = true
		}
		res.Items = append(res.Items, item)
	}

	if len(elems) > 0 && len(res.Items) == 0 {
		return ListResult[T]{Items: fallbackList(opts.Fallback), Status: NoUsableData, Dropped: res.Dropped}
	}

	if opts.Keep != nil {
		kept := res.Items[:0]
		for _, item := range res.Items {
			if opts.Keep(item) {
				kept = append(kept, item)
			} else {
				res.Pruned++
			}
		}
		res.Items = kept
	}

	return res
}

// MapOptions configures DecodeMap.
type MapOptions[V any] struct {
	ValidKey func(string) bool
	Value    Shape[V]
	Fallback func() map[string]V
}

// MapResult is the tagged outcome of DecodeMap.
type MapResult[V any] struct {
	Values  map[string]V
	Status  Status
	Dropped int
}

func fallbackMap[V any](fn func() map[string]V) map[string]V {
	if fn == nil {
		return map[string]V{}
	}
	m := fn()
	if m == nil {
		return map[string]V{}
	}
	return m
}

// DecodeMap decodes a JSON object snapshot, dropping entries whose key or value
// fails validation.
func DecodeMap[V any](raw string, present bool, opts MapOptions[V]) MapResult[V] {
	if !present || strings.TrimSpace(raw) == "" {
		return MapResult[V]{Values: fallbackMap(opts.Fallback), Status: Absent}
	}

	var top any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return MapResult[V]{Values: fallbackMap(opts.Fallback), Status: Unparseable}
	}
	if _, ok := top.(map[string]any); !ok {
		return MapResult[V]{Values: fallbackMap(opts.Fallback), Status: WrongShape}
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return MapResult[V]{Values: fallbackMap(opts.Fallback), Status: Unparseable}
	}

	res := MapResult[V]{Values: make(map[string]V, len(entries)), Status: Valid}
	for k, rawValue := range entries {
		if opts.ValidKey != nil && !opts.ValidKey(k) {
			res.Dropped++
			continue
		}
		v, err := opts.Value(rawValue)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Values[k] = v
	}

	if len(entries) > 0 && len(res.Values) == 0 {
		return MapResult[V]{Values: fallbackMap(opts.Fallback), Status: NoUsableData, Dropped: res.Dropped}
	}
	return res
}

// Encode serializes v as JSON. Nil slices and maps are written as empty
// containers so that a stored snapshot is never "null".
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}
