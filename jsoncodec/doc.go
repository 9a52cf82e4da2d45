// SPDX-License-Identifier: MIT
// Package jsoncodec stores automata as pretty-printed JSON documents.
//
// The document layout is automaton.Document: header scalars, the event
// list, states with their outgoing transitions inline, and one array per
// special-transition table of the model's type. HTML escaping is disabled
// so labels such as "<a,b>" stay readable.
//
// Importing the package registers Codec under codec.FormatJSON.
package jsoncodec
