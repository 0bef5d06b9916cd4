package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
)

// Stdin is the path that makes ImportJSON read from standard input.
const Stdin = "-"

type wordList struct {
	Words []cloud.WordItem `json:"words"`
}

// ReadJSON decodes a word list from r.
//
// ReadJSON returns an INVALID_WORDS error if the JSON is malformed or any
// word is empty. An empty list is valid. Words are converted to Unicode NFC
// so composed and decomposed spellings measure and compare the same.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]cloud.WordItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)

	var words []cloud.WordItem
	switch {
	case len(data) == 0:
		return nil, errors.New(errors.ErrCodeInvalidWords, "empty input")
	case data[0] == '[':
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWords, err, "decode word array")
		}
	default:
		var list wordList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWords, err, "decode word list")
		}
		words = list.Words
	}

	return CleanWords(words)
}

// CleanWords validates every word with [errors.ValidateWord] and converts it
// to Unicode NFC in place. It is applied to every word list entering the
// program, whether from a file, a request body or the analysis service.
// A nil list becomes an empty one.
func CleanWords(words []cloud.WordItem) ([]cloud.WordItem, error) {
	for i, w := range words {
		if err := errors.ValidateWord(i, w.Word, w.Weight); err != nil {
			return nil, err
		}
		words[i].Word = norm.NFC.String(w.Word)
	}
	if words == nil {
		words = []cloud.WordItem{}
	}
	return words, nil
}

// ImportJSON reads a word list from the file at path, or from standard
// input when path is [Stdin].
func ImportJSON(path string) ([]cloud.WordItem, error) {
	if path == Stdin {
		return ReadJSON(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "word list %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	words, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
