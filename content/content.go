// Package content serves the static informational pages (terms, privacy,
// heatmap) stored as JSON under {dir}/pages.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"kovan/stats"
)

var (
	ErrInvalidName = errors.New("invalid page name")
	ErrNotFound    = errors.New("page not found")
)

var pageName = regexp.MustCompile(`^[a-z0-9-]+$`)

// HeatmapPage is the page holding the province map data.
const HeatmapPage = "heatmap"

type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Page returns the raw JSON of {dir}/pages/{name}.json. A trailing ".json"
// on name is accepted.
func (l *Loader) Page(name string) (json.RawMessage, error) {
	if ext := filepath.Ext(name); ext == ".json" {
		name = name[:len(name)-len(ext)]
	}
	if !pageName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	raw, err := os.ReadFile(filepath.Join(l.dir, "pages", name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("page %s is not valid JSON", name)
	}
	return raw, nil
}

// Provinces reads the provinces.data list of the heatmap page.
func (l *Loader) Provinces() ([]stats.Province, error) {
	raw, err := l.Page(HeatmapPage)
	if err != nil {
		return nil, err
	}
	var page struct {
		Provinces struct {
			Data []stats.Province `json:"data"`
		} `json:"provinces"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode heatmap provinces: %w", err)
	}
	return page.Provinces.Data, nil
}
