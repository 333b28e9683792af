package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dgnsrekt/tab_agent/internal/browser"
	"github.com/dgnsrekt/tab_agent/internal/cdphost"
	"github.com/dgnsrekt/tab_agent/internal/config"
	"github.com/dgnsrekt/tab_agent/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The popup owns the terminal, so logs go to the rotating file only.
	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	if cfg.LaunchBrowser {
		launcher := browser.NewLauncher(browser.Config{
			CDPAddress: cfg.CDPAddress,
			CDPPort:    cfg.CDPPort,
			StartURL:   cfg.BrowserStartURL,
			ProfileDir: cfg.ProfileDir,
		})
		if err := launcher.Launch(context.Background()); err != nil {
			slog.Error("failed to launch browser", "error", err)
			_, _ = io.WriteString(os.Stderr, "browser launch failed: "+err.Error()+"\n")
			os.Exit(1)
		}
		defer launcher.Stop()
	}

	host := cdphost.New(cfg.CDPURL())
	if err := host.Connect(context.Background()); err != nil {
		slog.Error("failed to connect to browser", "cdp_url", cfg.CDPURL(), "error", err)
		_, _ = io.WriteString(os.Stderr, "browser connection failed: "+err.Error()+"\n")
		os.Exit(1)
	}
	defer func() { _ = host.Close() }()

	timeout := time.Duration(cfg.HostTimeoutMS) * time.Millisecond
	app := tui.NewApp(host, cfg.ExactMatch, timeout)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("popup failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
