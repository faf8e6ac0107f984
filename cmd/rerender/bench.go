package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/delaneyj/rerender/updates"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

type benchConfig struct {
	components int
	updates    int
	iters      int
}

type counter struct {
	renders int64
}

func (c *counter) PerformUpdateIfNecessary(uint64) error {
	c.renders++
	return nil
}

type benchResult struct {
	name    string
	renders int64
	flushes uint64
	metrics *tachymeter.Metrics
}

func bench(ctx context.Context, cmd *cli.Command) error {
	cfg := benchConfig{
		components: int(cmd.Uint(componentsKey)),
		updates:    int(cmd.Uint(updatesKey)),
		iters:      int(cmd.Uint(itersKey)),
	}
	if cfg.components == 0 || cfg.iters == 0 {
		return fmt.Errorf("components and iters must be positive")
	}

	log := loggerFor(cmd)
	log.Info().
		Int("components", cfg.components).
		Int("updates", cfg.updates).
		Int("iters", cfg.iters).
		Msg("benchmark started")
	start := time.Now()
	defer func() {
		log.Info().Dur("took", time.Since(start)).Msg("benchmark finished")
	}()

	results := make([]benchResult, 0, 2)
	for _, batched := range []bool{false, true} {
		r, err := runScenario(cfg, batched, log)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	renderBench(os.Stdout, cfg, results)
	return nil
}

func runScenario(cfg benchConfig, batched bool, log zerolog.Logger) (benchResult, error) {
	name := "unbatched"
	if batched {
		name = "batched"
	}
	res := benchResult{name: name}
	tach := tachymeter.New(&tachymeter.Config{Size: cfg.iters})

	for i := 0; i < cfg.iters; i++ {
		q := updates.NewQueue(updates.WithLogger(log))
		cs := make([]*counter, cfg.components)
		for j := range cs {
			cs[j] = &counter{}
		}

		enqueueAll := func() error {
			for u := 0; u < cfg.updates; u++ {
				if err := q.Enqueue(cs[u%len(cs)]); err != nil {
					return err
				}
			}
			return nil
		}

		start := time.Now()
		var err error
		if batched {
			err = q.BatchedUpdates(enqueueAll)
		} else {
			err = enqueueAll()
		}
		tach.AddTime(time.Since(start))
		if err != nil {
			return res, fmt.Errorf("%s iteration %d: %w", name, i, err)
		}

		for _, c := range cs {
			res.renders += c.renders
		}
		res.flushes += q.BatchNumber()
	}

	res.metrics = tach.Calc()
	return res, nil
}

func renderBench(w io.Writer, cfg benchConfig, results []benchResult) {
	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("Enqueue %s updates over %s components",
		humanize.Comma(int64(cfg.updates)), humanize.Comma(int64(cfg.components))))
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"scenario", "renders", "flushes", "avg", "min", "p75", "p99", "max"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.name,
			humanize.Comma(r.renders),
			humanize.Comma(int64(r.flushes)),
			r.metrics.Time.Avg,
			r.metrics.Time.Min,
			r.metrics.Time.P75,
			r.metrics.Time.P99,
			r.metrics.Time.Max,
		})
	}
	tbl.Render()
}
