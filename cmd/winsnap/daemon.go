package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/winsnap/internal/config"
	"github.com/1broseidon/winsnap/internal/daemon"
	"github.com/1broseidon/winsnap/internal/hotkeys"
	"github.com/1broseidon/winsnap/internal/ipc"
	"github.com/1broseidon/winsnap/internal/notify"
	"github.com/1broseidon/winsnap/internal/placement"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/runtimepath"
	"github.com/1broseidon/winsnap/internal/snapping"
	"github.com/1broseidon/winsnap/internal/topology"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/winsnap/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winsnap daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the hotkey daemon in the foreground.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config
	log.Printf("Configuration loaded (reset_scale: %g, log_level: %s)", cfg.ResetScale, cfg.LogLevel)

	level := &slog.LevelVar{}
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	notifier := notify.New(cfg.Notifications, cfg.NotifyOnFailure, logger)
	defer notifier.Wait()

	backend, err := platform.Open(platform.Options{Display: cfg.Display, XAuthority: cfg.XAuthority})
	if err != nil {
		if errors.Is(err, platform.ErrPermissionDenied) {
			notifier.PermissionDenied(err.Error())
		}
		log.Printf("Failed to connect to window system: %v", err)
		return 1
	}
	defer backend.Close()

	// Prompts for accessibility access on macOS; exits until it is granted.
	if !backend.Trusted(true) {
		notifier.PermissionDenied("")
		log.Printf("Window control permission denied; grant access and restart winsnap")
		return 1
	}

	snapper := snapping.New(backend, snapping.Options{
		ResetScale: cfg.ResetScale,
		Observer:   notifier,
		Logger:     logger,
	})
	cfgSync := daemon.NewConfigSync(cfg, func() (*config.Config, error) {
		res, err := loadConfig(*path)
		if err != nil {
			return nil, err
		}
		return res.Config, nil
	}, snapper, notifier, level, logger)

	dispatcher := hotkeys.NewDispatcher(hotkeys.DefaultTable(), func(action placement.Action) {
		snapper.Run(action)
	}, logger)

	listener, err := hotkeys.NewListener(backend)
	if err != nil {
		log.Printf("Failed to create hotkey listener: %v", err)
		return 1
	}
	if err := listener.Install(dispatcher); err != nil {
		if errors.Is(err, platform.ErrPermissionDenied) {
			notifier.PermissionDenied(err.Error())
		}
		log.Printf("Failed to install hotkeys: %v", err)
		return 1
	}
	defer listener.Close()

	resolver := topology.NewResolver(backend, logger)
	displays := mainThreadDisplays{source: resolver, exec: onMainThread}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		log.Printf("Failed to resolve IPC socket path: %v", err)
		return 1
	}
	ipcServer, err := ipc.NewServer(socketPath, ipc.Deps{
		Snapper:  mainThreadSnapper{Snapper: snapper, exec: onMainThread},
		Displays: displays,
		Bindings: dispatcher,
		Reload:   cfgSync.Reload,
		Logger:   logger,
	})
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if interval := cfg.PollInterval(); interval > 0 {
		watcher := daemon.NewWatcher(daemon.WatcherConfig{Interval: interval, Logger: logger}, displays)
		go watcher.Run(ctx)
	}

	topo := resolver.Enumerate()
	log.Printf("winsnap daemon started (%d display(s), primary %q)", topo.Len(), topo.Primary().Name)
	logBindings(dispatcher.Table())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					if err := cfgSync.Reload(); err != nil {
						log.Printf("Config reload failed: %v", err)
					}
				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down winsnap daemon...")
					cancel()
					listener.Close()
					return
				}
			}
		}
	}()

	// Blocks on the main thread until the listener is closed.
	log.Println("Entering event loop...")
	listener.Run()
	return 0
}

func logBindings(table hotkeys.Table) {
	log.Println("Active hotkeys:")
	for _, b := range table.Bindings() {
		log.Printf("  %-22s %s", b.String(), b.Action)
	}
}
