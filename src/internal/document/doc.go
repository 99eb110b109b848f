// Package document parses and serializes the hosts file managed by lost.
//
// The file is split by a fixed separator line. Everything above it is the
// user's preamble and is passed through untouched. Everything below it is a
// sequence of source blocks, each opened by a marker line naming the source URL:
//
//	127.0.0.1 localhost
//
//	# ENTRIES MADE BY LOST START HERE, ADD CUSTOM ENTRIES ABOVE AND DO NOT EDIT THE BELOW
//	# LOST URL https://example.com/hosts 192919291222//././././.
//	0.0.0.0 ads.example.com
//
// Parse refuses documents whose separator was removed while markers remain,
// or that contain the separator more than once. Serialize(Parse(x)) parses
// back to the same preamble and sources.
package document
