package model

import (
	"encoding/json"
	"strings"
)

// Text is a JSON string field that remembers how it arrived.
//
//	absent           → Set=false
//	"field": null    → Set=true,  Valid=false
//	"field": "x"     → Set=true,  Valid=true, Value="x"
//
// encoding/json only calls UnmarshalJSON for keys that are present, so the
// zero value means "absent".
type Text struct {
	Value string
	Set   bool
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	t.Set = true
	if string(data) == "null" {
		t.Valid = false
		t.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &t.Value); err != nil {
		return err
	}
	t.Valid = true
	return nil
}

// NewText returns a present, non-null Text.
func NewText(s string) Text {
	return Text{Value: s, Set: true, Valid: true}
}

// Null returns a present Text holding JSON null.
func Null() Text {
	return Text{Set: true}
}

// Blank reports whether the value is empty or whitespace only.
func (t Text) Blank() bool {
	return strings.TrimSpace(t.Value) == ""
}

// Ptr returns nil for null/absent, or a pointer to the value.
func (t Text) Ptr() *string {
	if !t.Valid {
		return nil
	}
	v := t.Value
	return &v
}
