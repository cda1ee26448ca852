package domain

import (
	"bytes"
	"encoding/json"
)

// PayloadKind distinguishes the three payload shapes.
type PayloadKind int

// Payload kinds.
const (
	PayloadEmpty PayloadKind = iota
	PayloadDocument
	PayloadList
)

// Payload is normalised process output: one JSON document, an ordered list of
// JSON documents, or nothing. Documents are kept as raw JSON so the gateway
// returns them verbatim.
type Payload struct {
	kind     PayloadKind
	document json.RawMessage
	items    []json.RawMessage
}

// EmptyPayload returns a payload carrying nothing.
func EmptyPayload() Payload {
	return Payload{kind: PayloadEmpty}
}

// DocumentPayload wraps a single JSON document.
func DocumentPayload(doc json.RawMessage) Payload {
	return Payload{kind: PayloadDocument, document: cloneRaw(doc)}
}

// ListPayload wraps an ordered list of JSON documents.
// A nil list is stored as an empty one so it encodes as [].
func ListPayload(items []json.RawMessage) Payload {
	copied := make([]json.RawMessage, len(items))
	for i := range items {
		copied[i] = cloneRaw(items[i])
	}
	return Payload{kind: PayloadList, items: copied}
}

// Kind returns the payload shape.
func (p Payload) Kind() PayloadKind {
	return p.kind
}

// Document returns the single document, or nil for other kinds.
func (p Payload) Document() json.RawMessage {
	return p.document
}

// Items returns the list elements, or nil for other kinds.
func (p Payload) Items() []json.RawMessage {
	return p.items
}

// Len returns the number of documents carried.
func (p Payload) Len() int {
	switch p.kind {
	case PayloadDocument:
		return 1
	case PayloadList:
		return len(p.items)
	default:
		return 0
	}
}

// MarshalJSON encodes the payload verbatim: the document itself, a JSON
// array of the items, or null.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PayloadDocument:
		return p.document, nil
	case PayloadList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range p.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(item)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// Decode unmarshals the payload into v.
func (p Payload) Decode(v any) error {
	data, err := p.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
