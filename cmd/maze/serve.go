package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/sim"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

var (
	flagSSHAddr    string
	flagHostKey    string
	flagServeMode  string
	flagServeLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one shared game over SSH",
	Long: `Run one authoritative simulation and attach every SSH session to it
as a view.

The first session is the controller (fogged player view), the second the
map view. In duel mode they steer player 1 and player 2. Later sessions
spectate the map. In relay mode the controller and map views trade
places after every exit.

Host key handling:
  Wish generates the key at --host-key (or ssh.host_key) on first start.

Examples:
  maze serve
  maze serve --ssh :2222 --mode relay

Users can connect with:
  ssh localhost -p 23240`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: ssh.address from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: ssh.host_key from config)")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "relay", "Game mode: solo, relay, duel")
	serveCmd.Flags().StringVar(&flagServeLevel, "level", "", "Level ID to start at")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr, "maze-ssh")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	world, mode, err := newWorld(cfg, flagServeMode, flagServeLevel, logger)
	if err != nil {
		closeLog()
		fail("%v", err)
	}

	pub := viewsync.NewPublisher()
	var engine *sim.Engine
	hub := viewsync.NewHub(viewsync.HubConfig{Players: mode.Players()}, pub,
		viewsync.InputFunc(func(p core.PlayerID, a core.Action) bool {
			return engine.SendInput(p, a)
		}), logger)
	engine = sim.NewEngine(world, cfg.SimConfig(), hub, logger)

	hub.Start()
	defer hub.Stop()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.IdleTimeout(),
		FogRadius:   cfg.View.FogRadius,
		FrameRate:   cfg.View.FrameRate,
		Keys:        tui.NewKeyMap(cfg.Controls),
	}, hub, logger)
	if err != nil {
		closeLog()
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(ctx); err != nil {
			logger.Error("simulation stopped", "err", err)
			stop()
		}
	}()

	fmt.Printf("Serving %s on %s\n", mode.Title(), cfg.SSH.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Serve(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
