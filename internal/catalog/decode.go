package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Decode parses a catalog document. JSON is the canonical form; YAML is
// accepted as well. Every primitive is validated and any failure aborts the
// whole decode with a *DecodeError. Unknown keys are ignored. References
// between entities are not checked; see CheckReferences.
func Decode(data []byte) (*File, error) {
	root, err := parseNode(data)
	if err != nil {
		return nil, err
	}
	f, err := decodeFile(root)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func parseNode(data []byte) (*yaml.Node, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Detail: "empty document", Err: ErrSyntax}
	}

	// Documents that open like JSON are parsed as JSON, including YAML
	// flow-style ones.
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return parseJSONNode(data)
	}
	return parseYAMLNode(data)
}

func parseYAMLNode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Detail: err.Error(), Err: ErrSyntax}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &DecodeError{Detail: "empty document", Err: ErrSyntax}
	}
	return doc.Content[0], nil
}

// installationDecoders maps a discriminator value to the decoder for that
// variant. The object passed in still contains the "type" key.
var installationDecoders = map[string]func(m *yaml.Node, path string) (Installation, error){
	TypeCabextract: decodeCabextract,
}

func decodeFile(n *yaml.Node) (*File, error) {
	m, err := mapping(n, "")
	if err != nil {
		return nil, err
	}

	var f File
	vn, err := required(m, "", "version")
	if err != nil {
		return nil, err
	}
	if f.Version, err = version(vn, "version"); err != nil {
		return nil, err
	}

	items, err := requiredSeq(m, "", "downloads")
	if err != nil {
		return nil, err
	}
	f.Downloads = make([]Download, 0, len(items))
	for i, item := range items {
		d, err := decodeDownload(item, index("downloads", i))
		if err != nil {
			return nil, err
		}
		f.Downloads = append(f.Downloads, d)
	}

	if items, err = requiredSeq(m, "", "fonts"); err != nil {
		return nil, err
	}
	f.Fonts = make([]Font, 0, len(items))
	for i, item := range items {
		fnt, err := decodeFont(item, index("fonts", i))
		if err != nil {
			return nil, err
		}
		f.Fonts = append(f.Fonts, fnt)
	}

	if items, err = requiredSeq(m, "", "groups"); err != nil {
		return nil, err
	}
	f.Groups = make([]Group, 0, len(items))
	for i, item := range items {
		g, err := decodeGroup(item, index("groups", i))
		if err != nil {
			return nil, err
		}
		f.Groups = append(f.Groups, g)
	}
	return &f, nil
}

func decodeDownload(n *yaml.Node, path string) (Download, error) {
	var d Download
	m, err := mapping(n, path)
	if err != nil {
		return d, err
	}
	if d.ID, err = requiredUUID(m, path, "id"); err != nil {
		return d, err
	}
	un, err := required(m, path, "downloadUrl")
	if err != nil {
		return d, err
	}
	if d.URL, err = urlValue(un, join(path, "downloadUrl")); err != nil {
		return d, err
	}
	if d.Hash, err = requiredString(m, path, "hash"); err != nil {
		return d, err
	}
	sn, err := required(m, path, "fileSize")
	if err != nil {
		return d, err
	}
	if d.FileSize, err = number(sn, join(path, "fileSize")); err != nil {
		return d, err
	}
	return d, nil
}

func decodeGroup(n *yaml.Node, path string) (Group, error) {
	var g Group
	m, err := mapping(n, path)
	if err != nil {
		return g, err
	}
	if g.ID, err = requiredUUID(m, path, "id"); err != nil {
		return g, err
	}
	if g.Name, err = requiredString(m, path, "name"); err != nil {
		return g, err
	}
	if g.Fonts, err = requiredUUIDs(m, path, "fonts"); err != nil {
		return g, err
	}
	return g, nil
}

func decodeFont(n *yaml.Node, path string) (Font, error) {
	var f Font
	m, err := mapping(n, path)
	if err != nil {
		return f, err
	}
	if f.ID, err = requiredUUID(m, path, "id"); err != nil {
		return f, err
	}
	if f.Name, err = requiredString(m, path, "name"); err != nil {
		return f, err
	}
	if f.ShortName, err = requiredString(m, path, "shortName"); err != nil {
		return f, err
	}
	if f.Publisher, err = requiredString(m, path, "publisher"); err != nil {
		return f, err
	}

	items, err := requiredSeq(m, path, "categories")
	if err != nil {
		return f, err
	}
	f.Categories = make([]Category, 0, len(items))
	for i, item := range items {
		p := index(join(path, "categories"), i)
		s, err := str(item, p)
		if err != nil {
			return f, err
		}
		c, ok := ParseCategory(s)
		if !ok {
			return f, fail(item, p, ErrInvalidCategory, s, "")
		}
		f.Categories = append(f.Categories, c)
	}

	if items, err = requiredSeq(m, path, "installations"); err != nil {
		return f, err
	}
	f.Installations = make([]Installation, 0, len(items))
	for i, item := range items {
		inst, err := decodeInstallation(item, index(join(path, "installations"), i))
		if err != nil {
			return f, err
		}
		f.Installations = append(f.Installations, inst)
	}
	return f, nil
}

func decodeInstallation(n *yaml.Node, path string) (Installation, error) {
	m, err := mapping(n, path)
	if err != nil {
		return nil, err
	}
	tn := field(m, "type")
	if tn == nil || isNull(tn) {
		return nil, fail(m, join(path, "type"), ErrMissingDiscriminator, "", "")
	}
	typ, err := str(tn, join(path, "type"))
	if err != nil {
		return nil, err
	}
	dec, ok := installationDecoders[typ]
	if !ok {
		return nil, fail(tn, join(path, "type"), ErrUnknownInstallationType, typ, "")
	}
	return dec(m, path)
}

func decodeCabextract(m *yaml.Node, path string) (Installation, error) {
	var c Cabextract
	var err error
	if c.Download, err = requiredUUID(m, path, "download"); err != nil {
		return nil, err
	}
	items, err := requiredSeq(m, path, "files")
	if err != nil {
		return nil, err
	}
	c.Files = make([]CabFile, 0, len(items))
	for i, item := range items {
		p := index(join(path, "files"), i)
		fm, err := mapping(item, p)
		if err != nil {
			return nil, err
		}
		var cf CabFile
		if cf.File, err = requiredString(fm, p, "file"); err != nil {
			return nil, err
		}
		if cf.RegistryName, err = requiredString(fm, p, "registryName"); err != nil {
			return nil, err
		}
		c.Files = append(c.Files, cf)
	}
	return c, nil
}

// --- node helpers ---

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func fail(n *yaml.Node, path string, kind error, value, detail string) *DecodeError {
	e := &DecodeError{Path: path, Value: value, Detail: detail, Err: kind}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}
	return e
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		}
		return n.ShortTag()
	}
	return "unknown"
}

func mismatch(n *yaml.Node, path, want string) *DecodeError {
	return fail(n, path, ErrTypeMismatch, "", fmt.Sprintf("expected %s, got %s", want, describe(n)))
}

func mapping(n *yaml.Node, path string) (*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, mismatch(n, path, "object")
	}
	return n, nil
}

// field returns the value for key in mapping m, or nil. The last
// occurrence wins when a key is repeated.
func field(m *yaml.Node, key string) *yaml.Node {
	var v *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			v = m.Content[i+1]
		}
	}
	return resolve(v)
}

func required(m *yaml.Node, path, key string) (*yaml.Node, error) {
	v := field(m, key)
	if v == nil || isNull(v) {
		return nil, fail(m, join(path, key), ErrMissingField, "", "")
	}
	return v, nil
}

func str(n *yaml.Node, path string) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", mismatch(n, path, "string")
	}
	return n.Value, nil
}

func number(n *yaml.Node, path string) (float64, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || (n.ShortTag() != "!!int" && n.ShortTag() != "!!float") {
		return 0, mismatch(n, path, "number")
	}
	if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
		return f, nil
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, mismatch(n, path, "number")
	}
	return f, nil
}

func seq(n *yaml.Node, path string) ([]*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, mismatch(n, path, "array")
	}
	return n.Content, nil
}

func requiredSeq(m *yaml.Node, path, key string) ([]*yaml.Node, error) {
	v, err := required(m, path, key)
	if err != nil {
		return nil, err
	}
	return seq(v, join(path, key))
}

func requiredString(m *yaml.Node, path, key string) (string, error) {
	v, err := required(m, path, key)
	if err != nil {
		return "", err
	}
	return str(v, join(path, key))
}

func uuidValue(n *yaml.Node, path string) (uuid.UUID, error) {
	s, err := str(n, path)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fail(n, path, ErrInvalidUUID, s, "")
	}
	return id, nil
}

func requiredUUID(m *yaml.Node, path, key string) (uuid.UUID, error) {
	v, err := required(m, path, key)
	if err != nil {
		return uuid.Nil, err
	}
	return uuidValue(v, join(path, key))
}

func requiredUUIDs(m *yaml.Node, path, key string) ([]uuid.UUID, error) {
	items, err := requiredSeq(m, path, key)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for i, item := range items {
		id, err := uuidValue(item, index(join(path, key), i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func version(n *yaml.Node, path string) (Version, error) {
	s, err := str(n, path)
	if err != nil {
		return Version{}, err
	}
	v, err := ParseVersion(s)
	if err != nil {
		return Version{}, fail(n, path, ErrInvalidVersion, s, "")
	}
	return v, nil
}

func urlValue(n *yaml.Node, path string) (URL, error) {
	s, err := str(n, path)
	if err != nil {
		return URL{}, err
	}
	u, err := ParseURL(s)
	if err != nil {
		return URL{}, fail(n, path, ErrInvalidURL, s, "")
	}
	return u, nil
}

// AsDecodeError extracts the *DecodeError from err, if there is one.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
