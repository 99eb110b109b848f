// Package confirm implements the interactive confirmation shown before
// entries that point at public addresses are written to the hosts file.
//
// The question can only be answered once the deliberation delay has passed.
// Anything typed earlier is thrown away, and end of input counts as "no".
package confirm
