package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireNode is the on-disk JSON shape this repo's CLI and tests use to
// feed a pre-parsed sexp tree to Parse without embedding a lexer or
// grammar (both are out-of-scope external collaborators; see SPEC_FULL.md).
type wireNode struct {
	Kind     string            `json:"kind"`
	Line     int               `json:"line"`
	EndLine  int               `json:"end_line,omitempty"`
	Str      string            `json:"str,omitempty"`
	Lit      *wireLit          `json:"lit,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

type wireLit struct {
	Kind    string  `json:"kind"`
	Int     int64   `json:"int,omitempty"`
	Float   float64 `json:"float,omitempty"`
	Str     string  `json:"str,omitempty"`
	Flags   string  `json:"flags,omitempty"`
	Exclude bool    `json:"exclude,omitempty"`
}

// Decode parses the JSON sexp wire format into a Node tree.
func Decode(data []byte) (*Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode sexp: %w", err)
	}
	return decodeNode(&w)
}

func decodeNode(w *wireNode) (*Node, error) {
	if w == nil {
		return nil, nil
	}
	n := &Node{
		Kind:    Kind(w.Kind),
		Line:    w.Line,
		EndLine: w.EndLine,
		Str:     w.Str,
	}
	if w.Lit != nil {
		n.LitVal = Lit{
			LitKind: LitKind(w.Lit.Kind),
			Int:     w.Lit.Int,
			Float:   w.Lit.Float,
			Str:     w.Lit.Str,
			Flags:   w.Lit.Flags,
			Exclude: w.Lit.Exclude,
		}
	}
	n.Children = make([]*Node, 0, len(w.Children))
	for _, raw := range w.Children {
		if string(bytes.TrimSpace(raw)) == "null" {
			n.Children = append(n.Children, nil)
			continue
		}
		var cw wireNode
		if err := json.Unmarshal(raw, &cw); err != nil {
			return nil, fmt.Errorf("decode sexp child of %s at line %d: %w", w.Kind, w.Line, err)
		}
		child, err := decodeNode(&cw)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
