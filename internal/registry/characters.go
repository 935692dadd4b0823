package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// CharacterSet maps canonical character names to their nickname lists while
// preserving the order names and nicknames were declared in.
type CharacterSet struct {
	names     []string
	nicknames map[string][]string
}

// NewCharacterSet returns an empty character set.
func NewCharacterSet() *CharacterSet {
	return &CharacterSet{nicknames: make(map[string][]string)}
}

// Add registers a character with its nicknames. Adding an existing character
// appends the nicknames to its list without changing its position.
func (s *CharacterSet) Add(name string, nicknames ...string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := s.nicknames[name]; !ok {
		s.names = append(s.names, name)
		s.nicknames[name] = nil
	}
	for _, nickname := range nicknames {
		nickname = strings.TrimSpace(nickname)
		if nickname == "" {
			continue
		}
		s.nicknames[name] = append(s.nicknames[name], nickname)
	}
}

// Names returns character names in declaration order.
func (s *CharacterSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Nicknames returns the nickname list for a character in declaration order.
func (s *CharacterSet) Nicknames(name string) []string {
	if s == nil {
		return nil
	}
	list := s.nicknames[name]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Len reports the number of registered characters.
func (s *CharacterSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// ParseCharacters decodes a characters.json document, an object mapping
// display names to nickname arrays. Key order in the document becomes the
// declaration order of the set; encoding/json maps would lose it, so the
// object is walked token by token.
func ParseCharacters(r io.Reader) (*CharacterSet, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse character registry: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse character registry: expected object, got %v", tok)
	}

	set := NewCharacterSet()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse character registry: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse character registry: non-string key %v", keyTok)
		}
		var nicknames []string
		if err := dec.Decode(&nicknames); err != nil {
			return nil, fmt.Errorf("parse character registry: nicknames for %q: %w", name, err)
		}
		set.Add(name, nicknames...)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse character registry: %w", err)
	}
	return set, nil
}

// LoadCharacters reads and parses a characters.json file.
func LoadCharacters(path string) (*CharacterSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open character registry: %w", err)
	}
	defer file.Close()
	return ParseCharacters(file)
}
