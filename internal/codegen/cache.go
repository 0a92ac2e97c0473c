package codegen

import (
	"fmt"
	"os"
	"path/filepath"
)

// Slot identifies one generated module in the cache.
type Slot int

const (
	// SlotConfig caches the generated config module.
	SlotConfig Slot = iota
	// SlotPackages caches the generated packages module.
	SlotPackages
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotConfig:
		return "config"
	case SlotPackages:
		return "packages"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// CacheState holds the last text written for each generated module.
// It starts empty and lives as long as its owner; nothing is persisted, so
// the first emit of a process always writes.
type CacheState struct {
	config   string
	packages string
}

// NewCacheState returns an empty cache.
func NewCacheState() *CacheState {
	return &CacheState{}
}

// Last returns the text last written for slot.
func (s *CacheState) Last(slot Slot) string {
	if slot == SlotConfig {
		return s.config
	}
	return s.packages
}

func (s *CacheState) remember(slot Slot, text string) {
	if slot == SlotConfig {
		s.config = text
		return
	}
	s.packages = text
}

// FileWriter persists generated files.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// OSWriter writes to the local filesystem, creating parent directories.
type OSWriter struct{}

// WriteFile implements FileWriter.
func (OSWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644) //nolint:gosec // G306: generated sources are compiled by other tools
}

// WriteError reports a generated file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Gate suppresses writes whose text equals the last written text.
type Gate struct {
	state  *CacheState
	writer FileWriter
}

// NewGate creates a Gate over state. A nil writer writes to disk.
func NewGate(state *CacheState, writer FileWriter) *Gate {
	if state == nil {
		state = NewCacheState()
	}
	if writer == nil {
		writer = OSWriter{}
	}
	return &Gate{state: state, writer: writer}
}

// WriteIfChanged writes text to path unless it equals the cached text for
// slot. The cache is updated only after a successful write. It reports
// whether a write happened.
func (g *Gate) WriteIfChanged(slot Slot, path, text string) (bool, error) {
	if g.state.Last(slot) == text {
		return false, nil
	}
	if err := g.writer.WriteFile(path, []byte(text)); err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	g.state.remember(slot, text)
	return true, nil
}
