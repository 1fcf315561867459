package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/branched-services/go-fibdapp"
	"github.com/branched-services/go-fibdapp/internal/tui"
)

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "ui",
		Short:       "Open the interactive form (default)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE:        a.runUI,
	}
}

// runUI shows the form while the session bootstraps in the background.
func (a *app) runUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	artifact, err := a.loadArtifact()
	if err != nil {
		return err
	}

	var program *tea.Program
	send := func(msg tea.Msg) { program.Send(msg) }

	reg := a.newRegistry()
	session := a.newSession(reg, fibdapp.WithObserver(tui.Observer(send)))
	defer session.Close()

	program = tea.NewProgram(
		tui.New(ctx, session),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := session.Bootstrap(gctx, fibdapp.Dialer(a.cfg.RPCURL), artifact); err != nil {
			a.logger.Error("bootstrap failed", zap.String("rpc", a.cfg.RPCURL), zap.Error(err))
			send(tui.ErrMsg{Err: err})
		}
		return nil
	})
	if a.cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, a.cfg.Metrics.Addr, reg, a.logger)
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
