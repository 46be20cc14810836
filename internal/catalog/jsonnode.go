package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonReader converts a JSON document into a yaml.Node tree so JSON and
// YAML catalogs share one decoder. Positions are kept for error reporting.
type jsonReader struct {
	data  []byte
	dec   *json.Decoder
	lines []int // byte offset of each line start
	depth int
}

// maxJSONDepth matches the nesting limit of encoding/json.
const maxJSONDepth = 10000

func parseJSONNode(data []byte) (*yaml.Node, error) {
	r := &jsonReader{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	r.dec.UseNumber()
	r.lines = append(r.lines, 0)
	for i, c := range data {
		if c == '\n' {
			r.lines = append(r.lines, i+1)
		}
	}

	n, err := r.value()
	if err != nil {
		return nil, r.syntaxError(err)
	}
	if _, err := r.dec.Token(); err != io.EOF {
		off := r.skip(int(r.dec.InputOffset()))
		line, col := r.position(off)
		return nil, &DecodeError{Line: line, Column: col, Detail: "unexpected data after document", Err: ErrSyntax}
	}
	return n, nil
}

func (r *jsonReader) syntaxError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	off := int(r.dec.InputOffset())
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off = int(se.Offset)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		off = len(r.data)
		err = errors.New("unexpected end of document")
	}
	line, col := r.position(off)
	return &DecodeError{Line: line, Column: col, Detail: err.Error(), Err: ErrSyntax}
}

// skip advances past whitespace and separators to the start of the next token.
func (r *jsonReader) skip(off int) int {
	for off < len(r.data) {
		switch r.data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

func (r *jsonReader) position(off int) (line, col int) {
	i := sort.Search(len(r.lines), func(i int) bool { return r.lines[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, off - r.lines[i] + 1
}

func (r *jsonReader) next() (json.Token, int, int, error) {
	start := r.skip(int(r.dec.InputOffset()))
	tok, err := r.dec.Token()
	line, col := r.position(start)
	return tok, line, col, err
}

func (r *jsonReader) value() (*yaml.Node, error) {
	tok, line, col, err := r.next()
	if err != nil {
		return nil, err
	}
	return r.build(tok, line, col)
}

func (r *jsonReader) build(tok json.Token, line, col int) (*yaml.Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		if t == '{' || t == '[' {
			r.depth++
			defer func() { r.depth-- }()
			if r.depth > maxJSONDepth {
				return nil, &DecodeError{Line: line, Column: col, Detail: "document nested too deeply", Err: ErrSyntax}
			}
		}
		switch t {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line, Column: col}
			for r.dec.More() {
				ktok, kl, kc, err := r.next()
				if err != nil {
					return nil, err
				}
				key, ok := ktok.(string)
				if !ok {
					return nil, &DecodeError{Line: kl, Column: kc, Detail: "object key is not a string", Err: ErrSyntax}
				}
				v, err := r.value()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Line: kl, Column: kc}, v)
			}
			if _, _, _, err := r.next(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line, Column: col}
			for r.dec.More() {
				v, err := r.value()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, v)
			}
			if _, _, _, err := r.next(); err != nil {
				return nil, err
			}
			return n, nil
		}
		return nil, &DecodeError{Line: line, Column: col, Detail: fmt.Sprintf("unexpected %q", rune(t)), Err: ErrSyntax}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t, Line: line, Column: col}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String(), Line: line, Column: col}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t), Line: line, Column: col}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line, Column: col}, nil
	}
	return nil, &DecodeError{Line: line, Column: col, Detail: fmt.Sprintf("unexpected token %v", tok), Err: ErrSyntax}
}
