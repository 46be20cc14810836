package catalog

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// URL is a parsed absolute URL that serializes as its string form.
type URL struct {
	u *url.URL
}

// ParseURL parses s as an absolute URL. Strings without a scheme or
// containing whitespace are rejected.
func ParseURL(s string) (URL, error) {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return URL{}, ErrInvalidURL
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return URL{}, ErrInvalidURL
	}
	if u.Opaque == "" && u.Host == "" && u.Path == "" {
		return URL{}, ErrInvalidURL
	}
	return URL{u: u}, nil
}

// MustParseURL is like ParseURL but panics on error.
func MustParseURL(s string) URL {
	u, err := ParseURL(s)
	if err != nil {
		panic("catalog: invalid URL " + s)
	}
	return u
}

// URL returns a copy of the underlying *url.URL, or nil for the zero value.
func (u URL) URL() *url.URL {
	if u.u == nil {
		return nil
	}
	c := *u.u
	return &c
}

// IsZero reports whether u holds no URL.
func (u URL) IsZero() bool { return u.u == nil }

func (u URL) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

// Base returns the last path element, or "" when the path is empty.
func (u URL) Base() string {
	if u.u == nil {
		return ""
	}
	p := strings.TrimRight(u.u.Path, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// Equal reports whether u and o have the same string form.
func (u URL) Equal(o URL) bool { return u.String() == o.String() }

func (u URL) MarshalText() ([]byte, error) {
	if u.u == nil {
		return nil, errors.New("catalog: marshaling empty URL")
	}
	return []byte(u.u.String()), nil
}

func (u *URL) UnmarshalText(b []byte) error {
	parsed, err := ParseURL(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Version is a semantic version that serializes as its canonical string.
type Version struct {
	v *semver.Version
}

// ParseVersion parses s as a strict major.minor.patch semantic version with
// optional pre-release and build metadata.
func ParseVersion(s string) (Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, ErrInvalidVersion
	}
	return Version{v: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic("catalog: invalid version " + s)
	}
	return v
}

// Semver returns the underlying version, or nil for the zero value.
func (v Version) Semver() *semver.Version { return v.v }

// IsZero reports whether v holds no version.
func (v Version) IsZero() bool { return v.v == nil }

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Equal reports whether v and o denote the same version, including
// build metadata.
func (v Version) Equal(o Version) bool { return v.String() == o.String() }

// Compare orders versions by semantic-version precedence.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

func (v Version) MarshalText() ([]byte, error) {
	if v.v == nil {
		return nil, errors.New("catalog: marshaling empty version")
	}
	return []byte(v.v.String()), nil
}

func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
