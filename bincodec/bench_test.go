// SPDX-License-Identifier: MIT

package bincodec_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/bincodec"
)

// grid builds a 2-event automaton over n states, each state i having
// transitions to i+1 and i+2 (mod n).
func grid(b *testing.B, n int) *automaton.Automaton {
	b.Helper()
	a := automaton.New()
	var ev [2]int
	for i, l := range []string{"step", "skip"} {
		id, err := a.AddEvent(l, automaton.AllTrue(1), automaton.AllTrue(1))
		if err != nil {
			b.Fatal(err)
		}
		ev[i] = id
	}
	for i := 1; i <= n; i++ {
		if _, err := a.AddState(fmt.Sprintf("q%d", i), i%7 == 0, i == 1); err != nil {
			b.Fatal(err)
		}
	}
	for i := int64(0); i < int64(n); i++ {
		if err := a.AddTransition(i+1, ev[0], (i+1)%int64(n)+1); err != nil {
			b.Fatal(err)
		}
		if err := a.AddTransition(i+1, ev[1], (i+2)%int64(n)+1); err != nil {
			b.Fatal(err)
		}
	}

	return a
}

// BenchmarkWrite encodes header and body for 5000 states into memory.
func BenchmarkWrite(b *testing.B) {
	a := grid(b, 5000)
	var hdr, bdy bytes.Buffer

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		hdr.Reset()
		bdy.Reset()
		if err := bincodec.Write(a, &hdr, &bdy); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(hdr.Len() + bdy.Len()))
}

// BenchmarkRead decodes the same pair back into a model.
func BenchmarkRead(b *testing.B) {
	a := grid(b, 5000)
	var hdr, bdy bytes.Buffer
	if err := bincodec.Write(a, &hdr, &bdy); err != nil {
		b.Fatal(err)
	}
	body := bytes.NewReader(bdy.Bytes())

	b.ReportAllocs()
	b.SetBytes(int64(hdr.Len() + bdy.Len()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := bincodec.Read(bytes.NewReader(hdr.Bytes()), body); err != nil {
			b.Fatal(err)
		}
	}
}
