package fragment

import (
	"fmt"
	"net/url"
)

// Store holds the fragment that mirrors the current palette.
// Load is called once at startup and Save after every palette change.
type Store interface {
	Load() (string, error)
	Save(fragment string) error
}

// Memory is a Store backed by a string.
type Memory struct {
	value  string
	writes int
}

// NewMemory returns a Memory store holding initial.
func NewMemory(initial string) *Memory {
	return &Memory{value: initial}
}

// Load returns the stored fragment.
func (m *Memory) Load() (string, error) { return m.value, nil }

// Save replaces the stored fragment.
func (m *Memory) Save(fragment string) error {
	m.value = fragment
	m.writes++
	return nil
}

// Writes reports how many times Save was called.
func (m *Memory) Writes() int { return m.writes }

// URL is a Store that keeps the fragment of a share URL up to date.
type URL struct {
	u *url.URL
}

// NewURL parses base as the share URL. Any fragment already present in base
// becomes the initial value. An empty base yields a bare "#fragment" URL.
func NewURL(base string) (*URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return &URL{u: u}, nil
}

// Load returns the URL's fragment.
func (s *URL) Load() (string, error) { return s.u.Fragment, nil }

// Save replaces the URL's fragment.
func (s *URL) Save(fragment string) error {
	s.u.Fragment = fragment
	s.u.RawFragment = ""
	return nil
}

// String returns the share URL.
func (s *URL) String() string { return s.u.String() }
