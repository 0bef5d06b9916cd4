package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level
// events to a charmbracelet logger. The CLI registers it when verbose
// output is requested.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger.WithPrefix("hooks")}
}

// Install registers h for pipeline, cache, and HTTP events.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, url string) {
	h.Logger.Debug("analyze start", "url", url)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, url string, wordCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("analyze failed", "url", url, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("analyze complete", "url", url, "words", wordCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, wordCount int) {
	h.Logger.Debug("layout start", "words", wordCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, wordCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "words", wordCount, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout complete", "words", wordCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
