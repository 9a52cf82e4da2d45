// Package jdec models automata and U-Structures for decentralized
// discrete-event control, and stores them in three interchangeable forms.
//
// 🚀 What is jdec?
//
//	A small, single-threaded model library plus its codecs:
//		• Core model: states, events, transitions and typed special
//		  transitions (bad transitions, violations, communications,
//		  disablement decisions)
//		• Text grammar: the line-oriented editor format, parsed with
//		  per-line error reporting and rendered byte-stably
//		• JSON documents: one pretty-printed file per model
//		• Legacy binary: the variable-width ".hdr"/".bdy" pair
//		• Reachability and feasible communication protocols
//		• A SQLite library of named models and a CLI
//
// ✨ Guarantees
//
//   - Round-trip: binary and JSON reloads render to the same text
//   - Referential integrity: special transitions always name a real transition
//   - Atomic saves: a failed write never truncates the previous file
//
// Packages:
//
//	automaton/  Model variants, Document, text grammar, capacity arithmetic
//	bytemanip/  big-endian variable-width integer helpers
//	codec/      Codec interface, format detection, atomic file replacement
//	jsoncodec/  JSON adapter
//	bincodec/   ".hdr"/".bdy" adapter
//	reach/      breadth-first reachability over transitions
//	protocol/   communication filtering and feasible protocol enumeration
//	library/    SQLite catalog of named automata
//	cmd/jdec/   command-line front end
//
// Quick example:
//
//	m, err := automaton.ParseInput(automaton.TypeAutomaton,
//		"a,T,T", "@s0,F\ns1,T", "s0,a,s1")
//	...
//	err = bincodec.Codec{}.Save(m, "plant.hdr")
package jdec
