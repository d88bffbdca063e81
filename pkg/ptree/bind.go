package ptree

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// DefaultTagName is the struct tag consulted by Decode.
const DefaultTagName = "ptree"

// Decode copies the tree into out, which must be a non-nil pointer,
// usually to a struct. Field names match keys case-insensitively unless
// a `ptree:"name"` tag says otherwise. Text values are converted weakly, so
// "8080" fills an int and "1,2,3" fills a []int.
//
// A node whose keys are all empty becomes a slice; a key that repeats
// becomes a slice of its values.
func (t *Tree) Decode(out any) error {
	cfg := &mapstructure.DecoderConfig{
		TagName:          DefaultTagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("ptree: create decoder: %w", err)
	}
	if err := dec.Decode(t.plain()); err != nil {
		return fmt.Errorf("ptree: decode: %w", err)
	}
	return nil
}

// plain converts t to strings, []any and map[string]any.
func (t *Tree) plain() any {
	if len(t.children) == 0 {
		return t.value
	}
	if t.IsList() {
		list := make([]any, len(t.children))
		for i, e := range t.children {
			list[i] = e.Tree.plain()
		}
		return list
	}
	counts := make(map[string]int, len(t.children))
	for _, e := range t.children {
		counts[e.Key]++
	}
	m := make(map[string]any, len(counts))
	for _, e := range t.children {
		v := e.Tree.plain()
		if counts[e.Key] > 1 {
			list, _ := m[e.Key].([]any)
			m[e.Key] = append(list, v)
			continue
		}
		m[e.Key] = v
	}
	return m
}

// IsList reports whether t has children and every key is empty. The JSON
// and YAML writers render such nodes as arrays.
func (t *Tree) IsList() bool {
	if len(t.children) == 0 {
		return false
	}
	for _, e := range t.children {
		if e.Key != "" {
			return false
		}
	}
	return true
}
