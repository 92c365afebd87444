// Package id3 decodes the ID3v2 tag at the start of an audio file.
//
// Ownership boundary:
// - tag header decode and validation
// - frame loop bounded by the declared tag size
// - decode error classification
//
// Leaf primitives live in subpackages: synchsafe (size integers), cursor
// (bounds-checked reads), text (frame strings) and frame (frame header,
// body dispatch and attributes).
package id3
