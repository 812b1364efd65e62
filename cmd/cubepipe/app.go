package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opendata-cz/cubepipe/catalog"
	"github.com/opendata-cz/cubepipe/config"
	"github.com/opendata-cz/cubepipe/cube"
	"github.com/opendata-cz/cubepipe/integrity"
	"github.com/opendata-cz/cubepipe/provenance"
	"github.com/opendata-cz/cubepipe/source"
	"github.com/opendata-cz/cubepipe/storage"
	"github.com/opendata-cz/cubepipe/transform"
)

// app carries the loaded configuration through the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newStageCommand(newApp func() (*app, error), name, short string, run func(*app, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			return run(a, ctx)
		},
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (a *app) runExtract(ctx context.Context) error {
	fetcher := source.NewFetcher(a.cfg.HTTP.Timeout, a.cfg.HTTP.UserAgent)
	extractor := source.NewExtractor(fetcher, a.cfg.Sources, a.logger)
	return extractor.ExtractAll(ctx, a.cfg.Paths.DatasetsDir)
}

func (a *app) runTransform(ctx context.Context) error {
	return transform.NewTransformer(a.logger).Run(a.cfg.Paths.DatasetsDir, a.cfg.Paths.TablesDir)
}

func (a *app) runLoad(ctx context.Context) error {
	loader, err := storage.Open(a.cfg.Database.DSN(), a.logger)
	if err != nil {
		return err
	}
	defer loader.Close()
	return loader.Load(ctx, a.cfg.Paths.TablesDir)
}

func (a *app) runCube(ctx context.Context) error {
	loader, err := storage.Open(a.cfg.Database.DSN(), a.logger)
	if err != nil {
		return err
	}
	defer loader.Close()

	rows, err := loader.FetchUsageStar(ctx)
	if err != nil {
		return err
	}
	g := cube.NewBuilder(a.cfg.Author, a.logger).Build(rows)
	if err := cube.WriteTurtle(a.cfg.Paths.CubeFile, g); err != nil {
		return err
	}
	a.logger.Info("data cube written", "path", a.cfg.Paths.CubeFile)
	return nil
}

func (a *app) runValidate(paths []string) error {
	validator := integrity.NewValidator(a.logger)
	failed := 0
	for _, path := range paths {
		report, err := validator.ValidateFile(path)
		if err != nil {
			return err
		}
		if report.Passed() {
			fmt.Printf("%s: PASSED\n", path)
			continue
		}
		failed++
		fmt.Printf("%s: FAILED (violated: %v)\n", path, report.Violations())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(paths))
	}
	return nil
}

func (a *app) runProvenance(ctx context.Context) error {
	g := provenance.NewBuilder(a.cfg.Author, a.cfg.Sources, a.logger).Build()
	if err := provenance.WriteTurtle(a.cfg.Paths.ProvenanceFile, g); err != nil {
		return err
	}
	a.logger.Info("provenance document written", "path", a.cfg.Paths.ProvenanceFile)
	return nil
}

func (a *app) runCatalog(ctx context.Context) error {
	g := catalog.NewBuilder(a.cfg.Author, a.logger).Build()
	if err := catalog.WriteTurtle(a.cfg.Paths.CatalogFile, g); err != nil {
		return err
	}
	a.logger.Info("catalog document written", "path", a.cfg.Paths.CatalogFile)
	return nil
}

func newValidateCommand(newApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check RDF documents against the Data Cube integrity constraints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.runValidate(args)
		},
	}
}

func newCatalogCommand(newApp func() (*app, error)) *cobra.Command {
	cmd := newStageCommand(newApp, "catalog", "Build the DCAT catalog document", (*app).runCatalog)
	cmd.AddCommand(newCatalogQueryCommand(newApp))
	return cmd
}

func newPipelineCommand(newApp func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run or watch the full stage DAG",
	}
	cmd.AddCommand(
		newStageCommand(newApp, "run", "Execute every stage in dependency order", (*app).runPipeline),
		newStageCommand(newApp, "watch", "Re-run the downstream stages when the datasets change", (*app).watchPipeline),
	)
	return cmd
}
