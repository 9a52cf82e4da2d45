// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/katalvlaran/jdec/automaton"
)

// File extensions, without the leading dot.
const (
	ExtJSON   = "json"
	ExtHeader = "hdr"
	ExtBody   = "bdy"
)

// Format identifies an on-disk representation.
type Format string

// Known formats.
const (
	FormatJSON   Format = "json"
	FormatBinary Format = "binary"
)

var (
	// ErrUnknownFormat is returned when no codec matches a path or name.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrNilModel is returned when Save receives a nil model.
	ErrNilModel = errors.New("codec: model is nil")
)

// Codec loads and saves models at a path. Load options configure the model
// being built (for example its logger); the controller count and capacities
// always come from the file.
type Codec interface {
	Load(path string, opts ...automaton.Option) (automaton.Model, error)
	Save(m automaton.Model, path string) error
}

var (
	regMu    sync.RWMutex
	registry = map[Format]Codec{}
)

// Register makes a codec available under f. It panics on a nil codec or a
// duplicate registration.
func Register(f Format, c Codec) {
	regMu.Lock()
	defer regMu.Unlock()
	if c == nil {
		panic("codec: Register codec is nil")
	}
	if _, dup := registry[f]; dup {
		panic(fmt.Sprintf("codec: Register called twice for %q", f))
	}
	registry[f] = c
}

// Lookup returns the codec registered under f.
func Lookup(f Format) (Codec, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	c, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q not registered", ErrUnknownFormat, f)
	}

	return c, nil
}

// Formats lists the registered formats in sorted order.
func Formats() []Format {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Format, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case ExtJSON:
		return FormatJSON, nil
	case ExtHeader, ExtBody:
		return FormatBinary, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// ForPath returns the registered codec for path's extension.
func ForPath(path string) (Codec, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	return Lookup(f)
}

// BinaryPaths returns the header and body paths for a binary pair. path may
// name either file or the shared base name.
func BinaryPaths(path string) (header, body string) {
	base := path
	switch strings.ToLower(filepath.Ext(path)) {
	case "." + ExtHeader, "." + ExtBody:
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	return base + "." + ExtHeader, base + "." + ExtBody
}
