package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/branched-services/go-fibdapp"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the primary account whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			observer := func(ev fibdapp.Event) {
				switch ev.Kind {
				case fibdapp.EventReady:
					fmt.Fprintf(out, "ready on network %s, primary %s\n", ev.NetworkID, primaryLabel(ev.Accounts))
				case fibdapp.EventAccountsChanged:
					fmt.Fprintf(out, "primary account changed: %s\n", primaryLabel(ev.Accounts))
				}
			}

			artifact, err := a.loadArtifact()
			if err != nil {
				return err
			}
			reg := a.newRegistry()
			session := a.newSession(reg, fibdapp.WithObserver(observer))
			defer session.Close()

			g, gctx := errgroup.WithContext(ctx)
			if err := session.Bootstrap(gctx, fibdapp.Dialer(a.cfg.RPCURL), artifact); err != nil {
				return err
			}
			if a.cfg.Metrics.Addr != "" {
				g.Go(func() error {
					return serveMetrics(gctx, a.cfg.Metrics.Addr, reg, a.logger)
				})
			}
			g.Go(func() error {
				<-gctx.Done()
				return nil
			})
			return g.Wait()
		},
	}
}

func primaryLabel(accounts []common.Address) string {
	if len(accounts) == 0 {
		return "none"
	}
	return accounts[0].Hex()
}
