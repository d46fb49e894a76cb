package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"catalogd/pkg/types"
)

// Document is the decoded upstream pricing file: a JSON object mapping raw
// model identifiers to records. Keys preserves the document's own key order;
// Go map iteration is randomized, and the pipeline's last-writer-wins slug
// index must stay deterministic across runs.
type Document struct {
	Keys    []string
	Records map[string]types.ModelRecord
}

// DecodeDocument reads a JSON object of raw model records from r, keeping
// the key order of the document.
func DecodeDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decode document: expected JSON object, got %v", tok)
	}
	doc := &Document{Records: make(map[string]types.ModelRecord)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode document key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("decode document key: got %v", keyTok)
		}
		var rec types.ModelRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", key, err)
		}
		if _, seen := doc.Records[key]; !seen {
			doc.Keys = append(doc.Keys, key)
		}
		doc.Records[key] = rec
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
