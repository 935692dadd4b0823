package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Series identifies one drama in the catalog.
type Series struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Episode identifies one episode within a series.
type Episode struct {
	Name string
	ID   string
}

// LoadSeries reads the series catalog, a JSON array of {id, name} objects.
func LoadSeries(path string) ([]Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series catalog: %w", err)
	}
	var series []Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("parse series catalog: %w", err)
	}
	out := series[:0]
	for _, s := range series {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// FindSeries looks up a series by identifier.
func FindSeries(series []Series, id int64) (Series, bool) {
	for _, s := range series {
		if s.ID == id {
			return s, true
		}
	}
	return Series{}, false
}

// FindSeriesByName looks up a series by its catalog name.
func FindSeriesByName(series []Series, name string) (Series, bool) {
	name = strings.TrimSpace(name)
	for _, s := range series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}
