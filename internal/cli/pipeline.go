package cli

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nycfree/calendar-sync/internal/config"
	"github.com/nycfree/calendar-sync/internal/event"
	"github.com/nycfree/calendar-sync/internal/listings"
	"github.com/nycfree/calendar-sync/internal/logger"
	"github.com/nycfree/calendar-sync/internal/scraper"
)

// pipeline holds the collaborators shared by the sync and fetch commands.
type pipeline struct {
	source  *listings.Client
	scraper *scraper.Scraper
	builder *event.Builder
	metrics *scraper.Metrics
}

// newPipeline wires the read side of the pipeline from configuration.
func newPipeline(cfg *config.Config) (*pipeline, error) {
	source, err := listings.NewClient(cfg.BaseURL, cfg.CollectionID, listings.ClientOptions{
		Crumb:   cfg.Crumb,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating listings client: %w", err)
	}

	metrics := scraper.NewMetrics()
	sc, err := scraper.New(cfg.BaseURL, scraper.Options{
		Timeout:      cfg.Timeout,
		RequestDelay: cfg.RequestDelay,
		CacheSize:    cfg.CacheSize,
		Metrics:      metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("creating detail scraper: %w", err)
	}

	builder, err := event.NewBuilder(cfg.BaseURL, cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("creating event builder: %w", err)
	}

	return &pipeline{
		source:  source,
		scraper: sc,
		builder: builder,
		metrics: metrics,
	}, nil
}

// serveMetrics exposes the pipeline's Prometheus registry on addr. The server
// runs for the life of the process; sync runs are short so a Shutdown hook
// buys nothing.
func (p *pipeline) serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.metrics.Registry, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("Serving metrics", logger.Fields{"addr": addr})
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("Metrics server stopped", logger.Fields{"addr": addr}, err)
		}
	}()
}
