package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// keyVersion is part of every key. Bump it when the word list or snapshot
// encoding changes so stale entries are never decoded.
const keyVersion = "v1"

// Keyer generates cache keys for each cached entry type.
type Keyer interface {
	// AnalysisKey keys the word list returned for an article URL.
	AnalysisKey(url string) string

	// ArtifactKey keys a rendered artifact for a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Azimuth    float64 `json:"azimuth"`
	Polar      float64 `json:"polar"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
	Title      string  `json:"title"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey normalizes surrounding whitespace before hashing so that
// trivially different spellings of the same URL share an entry.
func (DefaultKeyer) AnalysisKey(url string) string {
	return hashKey("analysis", strings.TrimSpace(url))
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey returns "kind:version:sha256(json(parts))".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + keyVersion + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. The pipeline uses it to identify a
// layout snapshot when keying rendered artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
