// SPDX-License-Identifier: MIT
// Package bincodec reads and writes the legacy two-file binary format.
//
// A model is stored as a header file (".hdr") and a body file (".bdy") with
// the same base name. All integers are big-endian and unsigned.
//
// Header file:
//
//	offset  size  field
//	     0     1  type
//	     1     8  number of existing states
//	     9     4  event capacity
//	    13     8  state capacity
//	    21     4  transition capacity (largest out-degree)
//	    25     4  label length (longest state label)
//	    29     8  initial state ID (0 = none)
//	    37     4  number of controllers
//	    41     4  number of events
//
// followed by one block per event (per controller an observable byte and a
// controllable byte, then a 4-byte label length and the label) and by the
// type's special-transition payload:
//
//   - automaton: a 4-byte count and 20-byte (src, event, dst) triples of bad
//     transitions
//   - U-Structure and pruned U-Structure: six 4-byte table counts and a
//     reserved 4-byte zero, then the records of each table in order;
//     communications append one role byte per controller, Nash
//     communications also append cost and probability as IEEE-754 bits,
//     disablement decisions append one byte per controller
//   - subset construction: nothing
//
// Body file: fixed-size records indexed by state ID, record id at offset
// id*BytesPerState. A record is a flag byte, the label zero-padded to the
// label length, and transition-capacity slots of (event ID, target ID)
// whose widths follow from the event and state capacities. Event ID 0 ends
// the slot list early. Slot 0 and IDs of absent states are all zeros.
//
// Unknown role bytes do not abort a load: the slot is logged through the
// model logger and left unset.
//
// Importing the package registers Codec under codec.FormatBinary.
package bincodec
