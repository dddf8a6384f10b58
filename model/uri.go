package model

import (
	"fmt"
	"net/url"
)

// URI is a parsed URI that keeps the exact text it was parsed from.
// url.URL.String drops an empty fragment, so "http://ex/onto#" would come
// back as "http://ex/onto" and names joined to it would lose the separator.
type URI struct {
	raw    string
	parsed *url.URL
}

// ParseURI validates s as a URI reference.
func ParseURI(s string) (*URI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return &URI{raw: s, parsed: u}, nil
}

// MustURI is ParseURI for literals known to be valid.
func MustURI(s string) *URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(fmt.Sprintf("model: invalid URI %q: %v", s, err))
	}
	return u
}

// String returns the URI as written.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.raw
}

// URL returns the parsed form.
func (u *URI) URL() *url.URL {
	if u == nil {
		return nil
	}
	return u.parsed
}
