// Package state owns the per-tag ID counters. The counter file is persisted
// separately from the log and maps each tag to the next number to hand out.
// Counters only ever increase and are never reconciled against task numbers
// typed into the log by hand; that collision is a documented limitation.
package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"tasklog/internal/fsutil"
)

// ErrCorrupt is returned when the counter file exists but cannot be parsed.
// The operation fails instead of resetting counters, because a reset would
// hand out IDs that already exist in the log.
var ErrCorrupt = errors.New("counter state corrupt")

// Counters maps tag -> next number to allocate.
type Counters struct {
	Tags map[string]int `yaml:",inline"`
}

// NewCounters returns an empty counter set.
func NewCounters() *Counters {
	return &Counters{Tags: make(map[string]int)}
}

// Load reads the counter file at path. A missing file surfaces the
// underlying fs.ErrNotExist so the caller can distinguish "not initialized"
// from corruption; an empty file is an empty counter set.
func Load(path string) (*Counters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := NewCounters()
	if strings.TrimSpace(string(data)) == "" {
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c.Tags); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if c.Tags == nil {
		c.Tags = make(map[string]int)
	}
	for tag, next := range c.Tags {
		if next < 1 {
			return nil, fmt.Errorf("%w: %s: counter for %q is %d", ErrCorrupt, path, tag, next)
		}
	}
	return c, nil
}

// Save writes the counters back to path atomically.
func (c *Counters) Save(path string) error {
	data, err := yaml.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshal counter state: %w", err)
	}
	return fsutil.AtomicWriteFile(path, data, 0o644)
}

// Reserve returns the next number for tag (1 for an unseen tag) and advances
// the counter. The caller must hold the write lock across Reserve, the log
// write, and Save, so two concurrent creates can never see the same value.
func (c *Counters) Reserve(tag string) int {
	next := c.Tags[tag]
	if next < 1 {
		next = 1
	}
	c.Tags[tag] = next + 1
	return next
}
