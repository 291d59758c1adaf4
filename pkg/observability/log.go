package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
// It implements [PipelineHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks logging to logger (log.Default() if nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFetchStart(_ context.Context, rng string) {
	h.logger.Debug("fetch", "range", rng)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, rng string, rows int, d time.Duration, err error) {
	h.done("fetched", err, "range", rng, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, program string, items int) {
	h.logger.Debug("render", "program", program, "items", items)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, program string, pages int, d time.Duration, err error) {
	h.done("rendered", err, "program", program, "pages", pages, "duration", d)
}

func (h *LogHooks) OnConvertStart(_ context.Context, engine string, pages int) {
	h.logger.Debug("convert", "engine", engine, "pages", pages)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, engine string, size int, d time.Duration, err error) {
	h.done("converted", err, "engine", engine, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "error", err)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(msg+" with error", append(kv, "error", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
