// Package buffer implements the editable SQL document held by a tablepad session.
//
// Exactly one Editor exists per client lifecycle. Writes always replace the whole
// document; there are no partial or incremental update semantics. Coordinates are
// 0-based (Row, Col) in runes.
package buffer
