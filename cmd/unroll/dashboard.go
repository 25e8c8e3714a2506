package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the full-screen dashboard with the Dashboard, Wallet, Savings and
Settings views. Press ? inside for key bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			return tui.Run(cmd.Context(),
				tui.WithStore(sess.store),
				tui.WithFeed(sess.feed),
				tui.WithThemeOverride(sess.config.ThemeOverride),
			)
		},
	}
}
