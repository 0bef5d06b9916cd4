// Package analysis talks to the keyword extraction service.
//
// The service accepts POST {base}/analyze with body {"url": "..."} and
// answers {"words": [{"word": "...", "weight": 0.42}, ...]}. A response
// without a words field is treated as an empty result.
//
// [Client] adds retry on transient failures and optional caching of
// results by URL:
//
//	c := analysis.NewClient("http://127.0.0.1:8000", analysis.WithCache(fc, cache.NewDefaultKeyer(), cache.AnalysisTTL))
//	words, err := c.Analyze(ctx, "https://example.com/article")
package analysis
