package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// WriteJSON encodes words as {"words": [...]} and writes it to w.
// A nil slice is written as an empty array.
func WriteJSON(words []cloud.WordItem, w io.Writer) error {
	if words == nil {
		words = []cloud.WordItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wordList{Words: words}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes words to a JSON file at path, or to standard output
// when path is "-".
func ExportJSON(words []cloud.WordItem, path string) error {
	if path == Stdin {
		return WriteJSON(words, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(words, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
