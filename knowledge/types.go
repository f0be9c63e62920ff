// Package knowledge converts the campus knowledge-base document into
// retrievable passages. Two views of the same record are produced: a
// domain-aware structured extraction per recognized section, and a
// generic recursive flattening for long-tail coverage. Both are kept
// without deduplication.
package knowledge

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Provenance tags carried on passages.
const (
	SourceKnowledgeBase = "knowledge_base"
	SourcePDF           = "pdf"
)

// Passage is one retrievable unit of text. Passages are immutable;
// the retrieval index owns them after ingestion.
type Passage struct {
	Content  string
	Category string
	Source   string
}

// Node is a parsed JSON-like value: *Object, *Array, or Scalar.
type Node interface {
	node()
}

// Object is a JSON object with key order preserved from the input.
type Object struct {
	Keys   []string
	Values map[string]Node
}

// Array is a JSON array.
type Array struct {
	Items []Node
}

// Scalar is a leaf value rendered as its JSON literal text (strings
// unquoted, numbers as written, true/false, null).
type Scalar string

func (*Object) node() {}
func (*Array) node()  {}
func (Scalar) node()  {}

// Get returns the child node for key.
func (o *Object) Get(key string) (Node, bool) {
	if o == nil {
		return nil, false
	}
	n, ok := o.Values[key]
	return n, ok
}

// Child returns the child object for key, or nil when the key is
// absent or not an object.
func (o *Object) Child(key string) *Object {
	n, ok := o.Get(key)
	if !ok {
		return nil
	}
	obj, _ := n.(*Object)
	return obj
}

// Items returns the elements of the array at key, or nil.
func (o *Object) Items(key string) []Node {
	n, ok := o.Get(key)
	if !ok {
		return nil
	}
	arr, ok := n.(*Array)
	if !ok {
		return nil
	}
	return arr.Items
}

// Text returns the scalar value at key, or the empty string.
func (o *Object) Text(key string) string {
	n, ok := o.Get(key)
	if !ok {
		return ""
	}
	s, ok := n.(Scalar)
	if !ok {
		return ""
	}
	return string(s)
}

// TextOr returns the scalar value at key, or fallback when absent.
func (o *Object) TextOr(key, fallback string) string {
	if v := o.Text(key); v != "" {
		return v
	}
	return fallback
}

// Join concatenates the scalar elements of the array at key.
func (o *Object) Join(key, sep string) string {
	items := o.Items(key)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(Scalar); ok {
			parts = append(parts, string(s))
		}
	}
	return strings.Join(parts, sep)
}

// Parse decodes a JSON document into a Node tree, preserving object
// key order. A malformed document is an error; ingestion treats it as
// fatal.
func Parse(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	node, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("parse knowledge document: %w", err)
	}

	// Trailing garbage after the top-level value is malformed input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse knowledge document: unexpected trailing content")
	}

	return node, nil
}

func decodeNode(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Object{Values: make(map[string]Node)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				value, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				if _, exists := obj.Values[key]; !exists {
					obj.Keys = append(obj.Keys, key)
				}
				obj.Values[key] = value
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Array{}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return Scalar(t), nil
	case json.Number:
		return Scalar(t.String()), nil
	case bool:
		if t {
			return Scalar("true"), nil
		}
		return Scalar("false"), nil
	case nil:
		return Scalar("null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
