package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

// ErrInvalidDataset is returned for datasets that reference missing groups or
// contain entries without an id.
var ErrInvalidDataset = errors.New("invalid dataset")

type fileDataset struct {
	Groups  []timeline.Group `yaml:"groups"`
	Entries []fileEntry      `yaml:"entries"`
}

type fileEntry struct {
	ID     string    `yaml:"id"`
	Group  string    `yaml:"group"`
	Title  string    `yaml:"title"`
	Start  time.Time `yaml:"start"`
	End    time.Time `yaml:"end"`
	Height float64   `yaml:"height"`
}

// ParseDataset decodes a YAML dataset:
//
//	groups:
//	  - id: api
//	    title: API
//	    stack_items: true
//	entries:
//	  - id: deploy-1
//	    group: api
//	    start: 2024-05-01T10:00:00Z
//	    end: 2024-05-01T10:20:00Z
func ParseDataset(data []byte) (Dataset, error) {
	var raw fileDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Dataset{}, err
	}

	known := make(map[string]struct{}, len(raw.Groups))
	for _, g := range raw.Groups {
		if g.ID == "" {
			return Dataset{}, fmt.Errorf("group without id: %w", ErrInvalidDataset)
		}
		known[g.ID] = struct{}{}
	}

	ds := Dataset{
		Groups:  raw.Groups,
		Entries: make([]timeline.Entry, 0, len(raw.Entries)),
	}
	for i, e := range raw.Entries {
		if e.ID == "" {
			return Dataset{}, fmt.Errorf("entry %d without id: %w", i, ErrInvalidDataset)
		}
		if _, ok := known[e.Group]; !ok {
			return Dataset{}, fmt.Errorf("entry %s references unknown group %q: %w", e.ID, e.Group, ErrInvalidDataset)
		}
		ds.Entries = append(ds.Entries, timeline.Entry{
			ID:      e.ID,
			GroupID: e.Group,
			Title:   e.Title,
			Start:   e.Start.UnixMilli(),
			End:     e.End.UnixMilli(),
			Height:  e.Height,
		})
	}
	return ds, nil
}

// LoadDataset reads and parses a YAML dataset file.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// FileSource serves a dataset held in memory.
type FileSource struct {
	dataset Dataset
}

// NewFileSource wraps a dataset.
func NewFileSource(ds Dataset) *FileSource {
	return &FileSource{dataset: ds}
}

// Dataset returns the wrapped dataset.
func (s *FileSource) Dataset() Dataset {
	return s.dataset
}

// Groups implements Source.
func (s *FileSource) Groups(context.Context) ([]timeline.Group, error) {
	return append([]timeline.Group(nil), s.dataset.Groups...), nil
}

// Entries implements Source.
func (s *FileSource) Entries(_ context.Context, window timeline.TimeWindow, groupIDs []string) ([]timeline.Entry, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return filterEntries(s.dataset.Entries, window, groupIDs), nil
}

// Bounds implements Bounder.
func (s *FileSource) Bounds(context.Context) (timeline.TimeWindow, bool, error) {
	w, ok := s.dataset.Window()
	return w, ok, nil
}

// Close implements Source.
func (s *FileSource) Close() error {
	return nil
}
