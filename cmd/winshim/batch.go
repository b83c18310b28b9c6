//go:build windows

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/jsonfile"
	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/ossignal"
	"github.com/satori/go.uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

func batchEntry() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [manifest]",
		Short: "Create all shims listed in a JSON manifest",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			logger := appLogger()

			exitWithErrorIfErr(batchBuild(
				ossignal.InterruptOrTerminateBackgroundCtx(logger),
				args[0],
				logger))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [manifest]",
		Short: "Create a manifest stub for you to fill in",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			exitWithErrorIfErr(batchManifestStubCreate(args[0]))
		},
	})

	return cmd
}

func batchBuild(ctx context.Context, manifestPath string, logger *log.Logger) error {
	logl := logex.Levels(logger)

	manifest, err := loadBatchManifest(manifestPath)
	if err != nil {
		return err
	}

	logl.Info.Printf("batch %s: creating %d shims", manifest.BatchUniqueId, len(manifest.Shims))

	shimQueue := make(chan ShimSpec)

	group, taskCtx := concurrently(ctx, batchConcurrency, func(ctx context.Context) error {
		for spec := range shimQueue {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := buildShim(buildRequest{
				InputPath:  spec.Path,
				OutputPath: spec.Output,
				ExtraArgs:  spec.Args,
				Subsystem:  spec.Subsystem,
				WdType:     spec.WdType,
				WdPath:     spec.WdPath,
			}, logger); err != nil {
				return fmt.Errorf("shim for %s: %w", spec.Path, err)
			}
		}

		return nil
	})

	for _, spec := range manifest.Shims {
		select {
		case shimQueue <- spec:
		case <-taskCtx.Done():
		}
	}
	close(shimQueue)

	if err := group.Wait(); err != nil {
		return err
	}

	fmt.Printf("Created %d shims (batch %s)\n", len(manifest.Shims), manifest.BatchUniqueId)
	return nil
}

// if any of the workers error, taskCtx will be canceled
func concurrently(
	ctx context.Context,
	concurrency int,
	task func(ctx context.Context) error,
) (*errgroup.Group, context.Context) {
	group, taskCtx := errgroup.WithContext(ctx)

	for i := 0; i < concurrency; i++ {
		group.Go(func() error {
			return task(taskCtx)
		})
	}

	return group, taskCtx
}

func batchManifestStubCreate(manifestPath string) error {
	exists, err := fileexists.Exists(manifestPath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s already exists - it'd be dangerous to overwrite", manifestPath)
	}

	if err := jsonfile.Write(manifestPath, &BatchManifest{
		BatchUniqueId: uuid.NewV4().String(),
		Shims: []ShimSpec{
			{
				Path: `C:\Program Files\AwesomeTool\awesometool.exe`,
				Args: "--some-flag",
			},
			{
				Path:      `C:\Program Files\AwesomeEditor\editor.exe`,
				Subsystem: "GUI",
				WdType:    "APP",
			},
		},
	}); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", manifestPath)
	return nil
}
