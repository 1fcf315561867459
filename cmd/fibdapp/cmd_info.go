package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/branched-services/go-fibdapp"
)

func (a *app) accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Show the node's accounts, network id and contract binding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session, err := a.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer session.Close()

			out := cmd.OutOrStdout()
			if p, ok := session.Provider().(*fibdapp.RPCProvider); ok {
				fmt.Fprintf(out, "Client:   %s\n", p.ClientVersion())
			}
			fmt.Fprintf(out, "Network:  %s\n", session.NetworkID())
			if addr, ok := session.Contract().Address(); ok {
				fmt.Fprintf(out, "Contract: %s\n", addr.Hex())
			} else {
				fmt.Fprintln(out, "Contract: not deployed on this network")
			}

			accounts := session.Accounts()
			if len(accounts) == 0 {
				fmt.Fprintln(out, "Accounts: none")
				return nil
			}
			fmt.Fprintln(out, "Accounts:")
			for i, acct := range accounts {
				marker := " "
				if i == 0 {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %s\n", marker, acct.Hex())
			}
			return nil
		},
	}
}

func (a *app) networksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the deployments recorded in the contract artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := a.loadArtifact()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			networks := artifact.Networks()
			if len(networks) == 0 {
				fmt.Fprintf(out, "%s has no recorded deployments\n", artifact.Name())
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NETWORK\tADDRESS\tTRANSACTION")
			for _, n := range networks {
				tx := "-"
				if n.TransactionHash != (common.Hash{}) {
					tx = n.TransactionHash.Hex()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.NetworkID, n.Address.Hex(), tx)
			}
			return w.Flush()
		},
	}
}
