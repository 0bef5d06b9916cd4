// Package io provides JSON import and export for weighted word lists.
//
// # JSON Format
//
// A word list is either a bare array or an object with a "words" array,
// which is what the analysis service returns:
//
//	[{"word": "golang", "weight": 0.91}, {"word": "sphere", "weight": 0.4}]
//
//	{"words": [{"word": "golang", "weight": 0.91}]}
//
// Order is significant: the index of a word determines its position on the
// sphere.
//
// # Import
//
// Use [ImportJSON] to read a list from a file path ("-" reads standard
// input), or [ReadJSON] to read from any io.Reader. Both reject empty
// words. Negative weights are passed through; the layout engine clamps
// them to zero.
//
// # Export
//
// [WriteJSON] and [ExportJSON] always write the object form so that the
// output can be fed back to every command that accepts a word list.
package io
