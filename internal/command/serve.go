// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/notebookd/internal/cache"
	"github.com/staranto/notebookd/internal/events"
	"github.com/staranto/notebookd/internal/notebook"
	"github.com/staranto/notebookd/internal/registry"
	"github.com/staranto/notebookd/internal/render"
	"github.com/staranto/notebookd/internal/scheduler"
	"github.com/staranto/notebookd/internal/server"
)

// ServeCommandBuilder assembles the serve subcommand, which runs the cache
// daemon until interrupted.
func ServeCommandBuilder(app *cli.Command) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "run the chunk-output cache daemon",
		UsageText: `notebookd serve [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "listen address",
				Value:   "127.0.0.1:8642",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NOTEBOOKD_ADDR"),
					yaml.YAML("serve.addr", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("addr", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringFlag{
				Name:  "renderer",
				Usage: "external command that renders a chunk to HTML",
				Value: "nbrender",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NOTEBOOKD_RENDERER"),
					yaml.YAML("serve.renderer", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("renderer", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.StringSliceFlag{
				Name:  "renderer-arg",
				Usage: "argument passed to the renderer command (repeatable)",
			},
			&cli.StringFlag{
				Name:  "scratch-dir",
				Usage: "scratch area for unsaved-document caches",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NOTEBOOKD_SCRATCH_DIR"),
					yaml.YAML("serve.scratch_dir", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.IntFlag{
				Name:  "replay-delay-ms",
				Usage: "delay before replaying cached output",
				Value: 10,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("serve.replay_delay_ms", altsrc.StringSourcer(cfg.Source)),
				),
			},
			&cli.IntFlag{
				Name:  "events-buffer",
				Usage: "outbound event queue size",
				Value: 256,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("serve.events_buffer", altsrc.StringSourcer(cfg.Source)),
				),
			},
		},
		Action: ServeCommandAction,
	}
}

// ServeCommandAction wires the registry, cache housekeeping, renderer and
// event queue together and serves until the context is cancelled.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", cmd.Name)

	// Path derivation reads the scratch root from the environment, so thread
	// the flag through it.
	if sd := cmd.String("scratch-dir"); sd != "" {
		if err := os.Setenv("NOTEBOOKD_SCRATCH_DIR", sd); err != nil {
			return err
		}
	}

	// Best-effort: pre-create the scratch area for unsaved documents.
	if err := os.MkdirAll(cache.ScratchRoot(), 0o755); err != nil { //nolint:mnd
		log.WithError(err).Warnf("failed to create scratch area %s", cache.ScratchRoot())
	}

	reg := registry.New()
	q := events.NewQueue(cmd.Int("events-buffer"))

	renderer := render.ExecRenderer{
		Command: cmd.String("renderer"),
		Args:    cmd.StringSlice("renderer-arg"),
	}

	nb := notebook.New(renderer, q, scheduler.Timers{})
	nb.ReplayDelay = time.Duration(cmd.Int("replay-delay-ms")) * time.Millisecond

	// Housekeeping subscriptions. Nothing here may fail the user action that
	// triggered it; warnings go to the log and the cache self-heals on the
	// next write.
	reg.OnDocRenamed(func(oldPath string, doc registry.Document) {
		for _, warn := range cache.Relocate(oldPath, doc.Path, doc.ID) {
			log.WithError(warn).Warnf("cache relocation for doc %s", doc.ID)
		}
	})
	reg.OnDocRemoved(func(docID string) {
		for _, warn := range cache.RemoveUnsaved(docID) {
			log.WithError(warn).Warnf("cache removal for doc %s", docID)
		}
	})

	srv := server.New(reg, nb, q)
	httpServer := &http.Server{
		Addr:              cmd.String("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:mnd
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Infof("listening on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
