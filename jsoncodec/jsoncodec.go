// SPDX-License-Identifier: MIT

package jsoncodec

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/codec"
)

// ErrMalformed is returned when the input is not a valid JSON document.
var ErrMalformed = errors.New("jsoncodec: malformed document")

const indent = "  "

func init() { codec.Register(codec.FormatJSON, Codec{}) }

// Codec implements codec.Codec for ".json" files.
type Codec struct{}

var _ codec.Codec = Codec{}

// Encode writes m to w as an indented JSON document.
func Encode(w io.Writer, m automaton.Model) error {
	if m == nil {
		return codec.ErrNilModel
	}

	return EncodeDocument(w, automaton.Export(m))
}

// EncodeDocument writes doc to w as an indented JSON document.
func EncodeDocument(w io.Writer, doc *automaton.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("jsoncodec: encode: %w", err)
	}

	return nil
}

// DecodeDocument reads one document from r without building a model.
func DecodeDocument(r io.Reader) (*automaton.Document, error) {
	var doc automaton.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &doc, nil
}

// Decode reads a document from r and builds the model it describes.
func Decode(r io.Reader, opts ...automaton.Option) (automaton.Model, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}

	return automaton.Build(doc, opts...)
}

// Load reads the model stored at path.
func (Codec) Load(path string, opts ...automaton.Option) (automaton.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsoncodec: %w", err)
	}
	defer f.Close()

	m, err := Decode(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Save writes m to path, replacing any existing file atomically.
func (Codec) Save(m automaton.Model, path string) error {
	if m == nil {
		return codec.ErrNilModel
	}

	return codec.WriteFile(path, func(w *bufio.Writer) error {
		return Encode(w, m)
	})
}
