package pipeline

import (
	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Layout places words on the sphere. Weights are clamped, never rejected,
// so Layout cannot fail once the options are valid.
func Layout(words []cloud.WordItem, opts Options) (cloud.Snapshot, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Snapshot{}, err
	}
	return cloud.NewSnapshot(words, *opts.Layout), nil
}
