// SPDX-License-Identifier: MIT
// Package codec defines the persistence contract shared by the automaton
// file formats and the plumbing they have in common.
//
// Formats:
//
//   - FormatJSON    one ".json" document (package jsoncodec)
//   - FormatBinary  a ".hdr" header file plus a ".bdy" body file sharing a
//     base name (package bincodec)
//
// Format packages register themselves with Register from an init function;
// ForPath then picks the codec for a file name by its extension.
//
// Saving never truncates a file in place: output goes to a temporary file in
// the destination directory and is renamed over the target only once fully
// written and synced (see AtomicFile).
package codec
