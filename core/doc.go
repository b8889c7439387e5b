// Package core holds the types every other twyg package speaks: Level,
// Entry and Field.
//
// An Entry is one log record. Entries come from a sync.Pool whose
// objects start with room for eight fields; take one with GetEntry and
// give it back with PutEntry after the handler returns.
//
// Field order is preserved and duplicate keys are allowed. Renderers
// print fields exactly in the order they appear on the Entry.
package core
