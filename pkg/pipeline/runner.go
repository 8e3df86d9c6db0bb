package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
)

// TTL is how long exported documents stay cached.
const TTL = 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil keyer selects [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: TTL}
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Data        []byte       `json:"data"`
	Format      string       `json:"format"`
	ContentType string       `json:"content_type"`
	Strategy    string       `json:"strategy"`
	Stats       layout.Stats `json:"stats"`
	// DocHash identifies the input document.
	DocHash  string        `json:"doc_hash"`
	CacheHit bool          `json:"-"`
	Elapsed  time.Duration `json:"-"`
}

// Execute parses input, lays it out and exports it in opts.Format. Results
// are cached by document, format and layout constants.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	docHash := cache.Hash(input)
	key, err := r.key(docHash, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.CacheHit = true
			res.Elapsed = time.Since(start)
			r.Logger.Debug("cache hit", "format", opts.Format, "doc", docHash[:12])
			return res, nil
		}
	}

	defs, err := Parse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	lr, err := Layout(ctx, defs, opts, r.Logger)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	r.Logger.Info("computed layout",
		"strategy", lr.Strategy,
		"nodes", lr.Stats.NodesPlaced,
		"edges", lr.Stats.EdgesRouted,
		"dropped", lr.Stats.EdgesDropped)

	data, err := Export(ctx, input, defs, lr, opts)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", opts.Format, err)
	}

	res := &Result{
		Data:        data,
		Format:      opts.Format,
		ContentType: ContentType(opts.Format),
		Strategy:    lr.Strategy,
		Stats:       lr.Stats,
		DocHash:     docHash,
	}
	r.store(ctx, key, res)
	res.Elapsed = time.Since(start)
	return res, nil
}

func (r *Runner) key(docHash string, opts Options) (string, error) {
	cfgHash, err := cache.HashJSON(opts.Layout)
	if err != nil {
		return "", fmt.Errorf("hash layout config: %w", err)
	}
	return r.Keyer.LayoutKey(docHash, cache.LayoutKeyOpts{
		Strategy:   opts.Layout.Strategy,
		Format:     fmt.Sprintf("%s:%g:%t:%t", opts.Format, opts.Scale, opts.Lanes, opts.Detailed),
		ConfigHash: cfgHash,
	}), nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
