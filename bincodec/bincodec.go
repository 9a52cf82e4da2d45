// SPDX-License-Identifier: MIT

package bincodec

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/codec"
)

func init() { codec.Register(codec.FormatBinary, Codec{}) }

// Codec implements codec.Codec for ".hdr"/".bdy" pairs. Either file name,
// or the shared base name, may be passed as path.
type Codec struct{}

var _ codec.Codec = Codec{}

// Load reads the header and body stored at path.
func (Codec) Load(path string, opts ...automaton.Option) (automaton.Model, error) {
	hdrPath, bdyPath := codec.BinaryPaths(path)
	raw, err := os.ReadFile(hdrPath)
	if err != nil {
		return nil, fmt.Errorf("bincodec: %w", err)
	}
	body, err := os.Open(bdyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBody, err)
	}
	defer body.Close()
	st, err := body.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBody, err)
	}

	doc, err := ReadDocument(raw, io.NewSectionReader(body, 0, st.Size()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hdrPath, err)
	}
	m, err := automaton.Build(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hdrPath, err)
	}

	return m, nil
}

// Save writes m to the header and body files for path. Each file is
// replaced atomically; the body is committed before the header. If the
// header commit fails, Load rejects the stale header against the new body
// unless both happen to share the same record layout and last state ID.
func (Codec) Save(m automaton.Model, path string) error {
	if m == nil {
		return codec.ErrNilModel
	}
	hdrPath, bdyPath := codec.BinaryPaths(path)
	hdr, err := codec.CreateAtomic(hdrPath)
	if err != nil {
		return err
	}
	defer hdr.Abort()
	bdy, err := codec.CreateAtomic(bdyPath)
	if err != nil {
		return err
	}
	defer bdy.Abort()

	if err := Write(m, hdr, bdy); err != nil {
		return err
	}
	if err := bdy.Commit(); err != nil {
		return err
	}

	return hdr.Commit()
}
