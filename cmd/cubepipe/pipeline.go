package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/opendata-cz/cubepipe/catalog"
	"github.com/opendata-cz/cubepipe/pipeline"
	"github.com/opendata-cz/cubepipe/rdf"
)

// tasks builds the full stage DAG. Provenance and catalog describe what
// the data stages produce, so they run after transform and cube.
func (a *app) tasks() []pipeline.Task {
	return []pipeline.Task{
		{Name: "extract", Run: a.runExtract},
		{Name: "transform", Deps: []string{"extract"}, Run: a.runTransform},
		{Name: "load", Deps: []string{"transform"}, Run: a.runLoad},
		{Name: "cube", Deps: []string{"load"}, Run: a.runCube},
		{Name: "validate", Deps: []string{"cube"}, Run: func(context.Context) error {
			return a.runValidate([]string{a.cfg.Paths.CubeFile})
		}},
		{Name: "provenance", Deps: []string{"transform"}, Run: a.runProvenance},
		{Name: "catalog", Deps: []string{"cube"}, Run: a.runCatalog},
	}
}

// downstreamTasks is the transform-onward subset watch mode re-runs.
func (a *app) downstreamTasks() []pipeline.Task {
	var tasks []pipeline.Task
	for _, t := range a.tasks() {
		if t.Name == "extract" {
			continue
		}
		var deps []string
		for _, dep := range t.Deps {
			if dep != "extract" {
				deps = append(deps, dep)
			}
		}
		t.Deps = deps
		tasks = append(tasks, t)
	}
	return tasks
}

func (a *app) retryConfig() pipeline.RetryConfig {
	return pipeline.RetryConfig{
		MaxAttempts:       a.cfg.Pipeline.MaxAttempts,
		BackoffBase:       a.cfg.Pipeline.BackoffBase,
		BackoffMultiplier: a.cfg.Pipeline.BackoffMultiplier,
	}
}

// newRunner assembles the runner with the configured event publisher
// and metrics. The returned cleanup closes the publisher.
func (a *app) newRunner(ctx context.Context) (*pipeline.Runner, func(), error) {
	publisher, err := pipeline.NewPublisher(a.cfg.NATS.URL, a.cfg.NATS.Subject)
	if err != nil {
		return nil, nil, err
	}

	var metrics *pipeline.Metrics
	if a.cfg.Metrics.Enabled {
		metrics = pipeline.NewMetrics()
		go func() {
			if err := metrics.Serve(ctx, a.cfg.Metrics.Addr, a.logger); err != nil {
				a.logger.Warn("metrics listener failed", "error", err)
			}
		}()
	}

	runner := pipeline.NewRunner(a.retryConfig(), publisher, metrics, a.logger)
	return runner, publisher.Close, nil
}

func (a *app) runPipeline(ctx context.Context) error {
	runner, cleanup, err := a.newRunner(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.Run(ctx, a.tasks())
}

func (a *app) watchPipeline(ctx context.Context) error {
	runner, cleanup, err := a.newRunner(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// One full run first so watch mode starts from fresh outputs.
	if err := runner.Run(ctx, a.tasks()); err != nil {
		return err
	}

	watcher := pipeline.NewWatcher(a.cfg.Pipeline.WatchDebounce, a.logger)
	return watcher.Watch(ctx, a.cfg.Paths.DatasetsDir, func(ctx context.Context) error {
		return runner.Run(ctx, a.downstreamTasks())
	})
}

func newCatalogQueryCommand(newApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "query <file>",
		Short: "Run the catalog reports against a catalog document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := newApp(); err != nil {
				return err
			}
			g, err := rdf.Load(args[0])
			if err != nil {
				return err
			}

			cmd.Println("--- Dataset formats")
			for _, row := range catalog.DatasetFormats(g) {
				cmd.Printf("%s, %s\n", row.Dataset, row.Format)
			}

			cmd.Println("--- Creators active in the previous month")
			for _, creator := range catalog.RecentCreators(g, time.Now()) {
				cmd.Println(creator)
			}
			return nil
		},
	}
}
