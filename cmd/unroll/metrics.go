package main

import (
	"github.com/spf13/cobra"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print in-process metrics in Prometheus text format",
		Long: `Load the store and print the metrics it recorded, such as tracked
subscriptions, monthly burn and persistence counters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			return sess.metrics.WriteText(cmd.OutOrStdout())
		},
	}
}
