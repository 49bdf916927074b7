// Package pipeline wires the scorecard stages end to end: ingest both
// sources, reconcile names, pick the reporting week, aggregate counts,
// and render one card per restaurant.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bitesnbags/scorecard-cli/internal/aggregate"
	"github.com/bitesnbags/scorecard-cli/internal/config"
	"github.com/bitesnbags/scorecard-cli/internal/ingest"
	"github.com/bitesnbags/scorecard-cli/internal/model"
	"github.com/bitesnbags/scorecard-cli/internal/normalize"
	"github.com/bitesnbags/scorecard-cli/internal/reconcile"
	"github.com/bitesnbags/scorecard-cli/internal/render"
	"github.com/bitesnbags/scorecard-cli/internal/report"
	"github.com/bitesnbags/scorecard-cli/internal/week"
)

// TrackerSource is the already-read tracker content plus its declared
// encoding. All file access belongs to the caller.
type TrackerSource struct {
	Content []byte
	Format  ingest.TrackerFormat
}

// Options configures a run.
type Options struct {
	Match  config.MatchConfig
	Render config.RenderConfig
	Now    time.Time // reference instant for the empty-log fallback; zero means time.Now()
}

// Summary reports what a run did.
type Summary struct {
	RunID       string
	Orders      int
	Restaurants int
	Week        week.Selection
	Unmatched   []string
	Cards       int
	PNGs        int
	ArchivePath string
}

// Run executes the full pipeline. Row-level problems and unmatched names
// degrade the output; only unusable sources or artifact I/O failures
// return an error.
func Run(ctx context.Context, ordersCSV io.Reader, tracker TrackerSource, opts Options) (*Summary, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	orders, err := ingest.ReadOrders(ordersCSV, ingest.NewOrderOptions(opts.Match.ExcludedPlaces, opts.Match.ExcludedStatuses))
	if err != nil {
		return nil, err
	}

	records, err := ingest.ReadTracker(tracker.Content, tracker.Format)
	if err != nil {
		return nil, err
	}

	log.Info("sources loaded",
		zap.Int("orders", len(orders)),
		zap.Int("restaurants", len(records)),
	)

	sel := week.Determine(orders, now)
	log.Info("reporting week selected",
		zap.Time("week_start", sel.Start),
		zap.String("month", sel.Month),
		zap.Int("week_of_month", sel.WeekOfMonth),
	)

	orderKeys := make([]string, 0, len(orders))
	for _, o := range orders {
		orderKeys = append(orderKeys, o.Key)
	}
	trackerKeys := make([]string, 0, len(records))
	for k := range records {
		trackerKeys = append(trackerKeys, k)
	}

	res := reconcile.BuildNameMap(orderKeys, trackerKeys, reconcile.Options{
		Overrides: opts.Match.Overrides,
		Threshold: opts.Match.SimilarityThreshold,
	})
	if len(res.Unmatched) > 0 {
		log.Warn("order places without a tracker match",
			zap.Strings("unmatched", res.Unmatched),
		)
	}

	counts := aggregate.CountByDay(orders, res.Map, sel.Start)
	inputs := report.Assemble(records, counts, res.Map, sel)

	summary := &Summary{
		RunID:       runID,
		Orders:      len(orders),
		Restaurants: len(records),
		Week:        sel,
		Unmatched:   res.Unmatched,
	}

	if err := renderAll(ctx, log, inputs, opts.Render, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

func renderAll(ctx context.Context, log *zap.Logger, inputs []model.ReportInput, cfg config.RenderConfig, summary *Summary) error {
	htmlDir := filepath.Join(cfg.OutDir, "html")
	if err := os.MkdirAll(htmlDir, 0o755); err != nil {
		return eris.Wrapf(err, "pipeline: create %s", htmlDir)
	}

	pngDir := filepath.Join(cfg.OutDir, "png")
	var shooter *render.Screenshotter
	if cfg.PNG {
		if err := os.MkdirAll(pngDir, 0o755); err != nil {
			return eris.Wrapf(err, "pipeline: create %s", pngDir)
		}
		var err error
		shooter, err = render.NewScreenshotter()
		if err != nil {
			// HTML artifacts are still worth producing without a browser.
			log.Warn("browser unavailable, generating HTML only", zap.Error(err))
		} else {
			defer shooter.Close()
		}
	}

	var mu sync.Mutex
	archived := make(map[string][]byte)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return eris.Wrap(err, "pipeline: render cancelled")
			}

			html, err := render.Card(in)
			if err != nil {
				return err
			}

			base := normalize.Filename(in.Record.DisplayName)
			htmlPath := filepath.Join(htmlDir, base+".html")
			if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
				return eris.Wrapf(err, "pipeline: write %s", htmlPath)
			}

			// The HTML card is always archived; the PNG joins it when
			// capture works, so archive contents do not depend on whether
			// a browser was available.
			mu.Lock()
			summary.Cards++
			archived[base+".html"] = html
			mu.Unlock()

			if shooter == nil {
				return nil
			}

			png, err := shooter.Capture(htmlPath)
			if err != nil {
				log.Warn("screenshot failed, keeping HTML only",
					zap.String("restaurant", in.Record.DisplayName),
					zap.Error(err),
				)
				return nil
			}

			pngPath := filepath.Join(pngDir, base+".png")
			if err := os.WriteFile(pngPath, png, 0o644); err != nil {
				return eris.Wrapf(err, "pipeline: write %s", pngPath)
			}

			mu.Lock()
			summary.PNGs++
			archived[base+".png"] = png
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Zip {
		path := filepath.Join(cfg.OutDir, render.ArchiveName(summary.Week.Month, summary.Week.WeekOfMonth))
		if err := render.WriteArchive(path, archived); err != nil {
			return err
		}
		summary.ArchivePath = path
	}

	return nil
}
