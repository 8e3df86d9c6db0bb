package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line, errors as warnings. It
// implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, size int) {
	h.logger.Debug("parse started", "bytes", size)
}

func (h *LogHooks) OnParseComplete(_ context.Context, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("parse failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("parse complete", "nodes", nodeCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, strategy string, nodeCount int) {
	h.logger.Debug("layout started", "strategy", strategy, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, strategy string, placed, dropped int, d time.Duration) {
	h.logger.Debug("layout complete", "strategy", strategy, "placed", placed, "dropped", dropped, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export started", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "bytes", size, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
