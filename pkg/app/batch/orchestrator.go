package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxCount    = 50
	DefaultConcurrency = 8
	DefaultTimeout     = 30 * time.Second
)

type Config struct {
	MaxCount    int
	Concurrency int
	Timeout     time.Duration
}

type Options struct {
	IncludeDomain bool
	// MaxCount overrides the configured cap when positive.
	MaxCount int
}

//go:generate mockery --name=Orchestrator --dir=. --output=./mocks --filename=orchestrator_mock.go --case=underscore --with-expecter
type Orchestrator interface {
	Run(ctx context.Context, urls []string, opts Options) (*verdict.BatchResult, error)
}

type orchestrator struct {
	logger  *logrus.Logger
	cfg     Config
	scanner scan.Scanner
}

func NewOrchestrator(logger *logrus.Logger, cfg Config, scanner scan.Scanner) Orchestrator {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = DefaultMaxCount
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &orchestrator{logger: logger, cfg: cfg, scanner: scanner}
}

// Run scans every URL in isolation. One item failing never fails the batch;
// the only batch level error is an empty input.
func (o *orchestrator) Run(ctx context.Context, urls []string, opts Options) (*verdict.BatchResult, error) {
	if len(urls) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	start := time.Now()

	limit := o.cfg.MaxCount
	if opts.MaxCount > 0 {
		limit = opts.MaxCount
	}
	unique, truncated := Prepare(urls, limit)

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	items := make([]verdict.BatchItem, len(unique))
	done := make([]bool, len(unique))

	g := new(errgroup.Group)
	g.SetLimit(o.cfg.Concurrency)
	for i, u := range unique {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			items[i] = o.scanOne(ctx, i, u, opts)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck

	for i := range items {
		if !done[i] {
			items[i] = verdict.BatchItem{Index: i, URL: unique[i], Err: domain.ErrItemTimeout}
			o.count("timeout")
		}
	}

	res := verdict.NewBatchResult(items, truncated)
	if prometheus.Config.EnableLatency {
		prometheus.BatchLatency.Observe(float64(time.Since(start).Milliseconds()))
	}
	o.logger.WithFields(logrus.Fields{
		"count":        res.Count,
		"threat_count": res.ThreatCount,
		"errors":       res.Stats.Error,
		"truncated":    truncated,
	}).Info("batch scanned")
	return res, nil
}

func (o *orchestrator) scanOne(ctx context.Context, index int, url string, opts Options) (item verdict.BatchItem) {
	item = verdict.BatchItem{Index: index, URL: url}
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithField("url", url).Errorf("panic while scanning url: %v", r)
			item.Verdict = nil
			item.Err = fmt.Errorf("internal error while scanning url: %v", r)
			o.count("error")
		}
	}()

	v, err := o.scanner.Scan(ctx, url, scan.Options{IncludeDomain: opts.IncludeDomain, Strict: true})
	switch {
	case err != nil && !domain.IsInputError(err) && errors.Is(ctx.Err(), context.DeadlineExceeded):
		item.Err = domain.ErrItemTimeout
		o.count("timeout")
	case err != nil:
		item.Err = err
		o.count("error")
	default:
		item.Verdict = v
		o.count("scored")
	}
	return item
}

func (o *orchestrator) count(outcome string) {
	prometheus.BatchItemsTotal.WithLabelValues(outcome).Inc()
}

// Prepare trims, removes duplicates keeping the first occurrence and caps the
// list at limit. Empty entries are kept so they surface as item errors.
func Prepare(urls []string, limit int) ([]string, bool) {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, min(len(urls), max(limit, 0)))
	truncated := false
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if _, dup := seen[u]; dup {
			continue
		}
		if limit > 0 && len(out) == limit {
			truncated = true
			break
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out, truncated
}
