package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestJSONNode_Positions(t *testing.T) {
	data := []byte("{\n  \"a\": [1, 2.5],\n  \"b\": {\"c\": null}\n}")
	n, err := parseJSONNode(data)
	if err != nil {
		t.Fatalf("parseJSONNode: %v", err)
	}
	if len(n.Content) != 4 {
		t.Fatalf("expected 2 key/value pairs, got %d nodes", len(n.Content))
	}
	key := n.Content[2]
	if key.Value != "b" || key.Line != 3 || key.Column != 3 {
		t.Errorf("key b at %d:%d, want 3:3", key.Line, key.Column)
	}
	arr := n.Content[1]
	if arr.Content[0].Tag != "!!int" || arr.Content[1].Tag != "!!float" {
		t.Errorf("number tags = %s, %s", arr.Content[0].Tag, arr.Content[1].Tag)
	}
	if !isNull(n.Content[3].Content[1]) {
		t.Error("null value not tagged !!null")
	}
}

func TestJSONNode_SyntaxErrorPosition(t *testing.T) {
	_, err := parseJSONNode([]byte("{\n  \"a\": tru}"))
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want syntax DecodeError", err)
	}
	if de.Line != 2 {
		t.Errorf("line = %d, want 2", de.Line)
	}
}

func TestPathHelpers(t *testing.T) {
	if got := join("", "version"); got != "version" {
		t.Errorf("join = %q", got)
	}
	if got := index(join("fonts", "categories"), 2); got != "fonts.categories[2]" {
		t.Errorf("index = %q", got)
	}
}

func TestJSONNode_DepthLimit(t *testing.T) {
	_, err := parseJSONNode([]byte(strings.Repeat("[", 2_000_000)))
	var de *DecodeError
	if !errors.As(err, &de) || !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want syntax DecodeError", err)
	}
	if de.Detail != "document nested too deeply" {
		t.Errorf("detail = %q", de.Detail)
	}

	ok := strings.Repeat("[", maxJSONDepth) + strings.Repeat("]", maxJSONDepth)
	if _, err := parseJSONNode([]byte(ok)); err != nil {
		t.Errorf("depth %d rejected: %v", maxJSONDepth, err)
	}
}

func TestDecode_DeeplyNested(t *testing.T) {
	doc := `{"version": ` + strings.Repeat("[", maxJSONDepth+1)
	_, err := Decode([]byte(doc))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
}
