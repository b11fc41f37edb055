package stream

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/banshee-data/velocity.hud/internal/overlay"
)

// ToStruct converts a bundle to its wire form. Field names follow the
// bundle's JSON tags.
func ToStruct(b *overlay.Bundle) (*structpb.Struct, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal bundle: %w", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("convert bundle: %w", err)
	}
	return st, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(st *structpb.Struct) (*overlay.Bundle, error) {
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	b := &overlay.Bundle{}
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return b, nil
}
