package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (a *app) fibCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fib <n>",
		Short: "Compute the nth Fibonacci number with the deployed contract",
		Example: `  fibdapp fib 10
  fibdapp fib 0x64 --rpc http://127.0.0.1:8545`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session, err := a.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer session.Close()

			result, err := session.Calculate(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Result: %s\n", result)
			return nil
		},
	}
}
