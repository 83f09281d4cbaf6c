package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23240").
	Address string

	// HostKeyPath is the path to the host key file. Wish generates it on
	// first start.
	HostKeyPath string

	// IdleTimeout closes idle connections. Zero disables it.
	IdleTimeout time.Duration

	FogRadius int
	FrameRate int
	Keys      KeyMap
}

// SSHServer serves one shared simulation to every SSH session. Each session
// becomes a view attached to the hub.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	hub    *viewsync.Hub
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, hub *viewsync.Hub, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		hub:    hub,
		logger: logger,
	}

	if dir := filepath.Dir(cfg.HostKeyPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("cannot create host key directory: %w", err)
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler attaches a new view session to the hub for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	vs := viewsync.NewMailbox(viewsync.NewSessionID())
	s.hub.Send(viewsync.AttachMsg{Viewer: vs})

	go func() {
		<-sess.Context().Done()
		vs.Close()
		s.logger.Debug("view closed", "session", vs.ID().Short(), "frames_skipped", vs.Replaced())
	}()

	// Create runtime config from PTY size
	rc := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		FrameRate: s.config.FrameRate,
	}
	model := NewViewModel(vs, s.hub, s.config.Keys, s.config.FogRadius, sess.User(), rc)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// Serve runs the server until ctx is cancelled, then shuts it down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
