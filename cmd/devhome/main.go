package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devhome/internal/ai"
	"devhome/internal/config"
	"devhome/internal/editor"
	"devhome/internal/host"
	"devhome/internal/ui"
	"devhome/internal/util/logx"
	"devhome/internal/version"
	"devhome/internal/wizard"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("devhome", version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting devhome %s: %s", version.String(), cfg.String())

	reg := editor.NewRegistry()
	editor.RegisterProjectEditors(reg)

	switch {
	case cfg.Configure != "":
		err = runConfigure(ctx, cfg, reg)
	case cfg.ExportFormat != "":
		err = runExport(cfg)
	case cfg.Headless:
		err = runHeadless(ctx, cfg)
	default:
		var client *ai.Client
		if !cfg.Offline {
			client = ai.NewClient(cfg.OpenAIKey(), cfg.OpenAIBase, cfg.OpenAIModel, time.Duration(cfg.OpenAITimeoutSec)*time.Second).
				WithCache(ai.NewCache(""))
		}
		err = ui.Run(ctx, cfg, ui.Deps{Registry: reg, Host: host.NewSystem(nil), AI: client})
	}
	if err == nil {
		return
	}
	if errors.Is(err, wizard.ErrAborted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	}
	logx.Errorf("devhome exited with error: %v", err)
	fmt.Fprintln(os.Stderr, "devhome:", err)
	os.Exit(1)
}
