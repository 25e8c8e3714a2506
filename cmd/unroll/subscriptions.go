package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/currency"
	"github.com/Veraticus/unroll/internal/insights"
	"github.com/Veraticus/unroll/internal/model"
)

func listCmd() *cobra.Command {
	var search, status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked subscriptions",
		Example: `  # Everything
  unroll list

  # Software subscriptions still on trial
  unroll list --search software --status trial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, ok := model.ParseStatus(status)
			if !ok {
				return common.NewUserError(fmt.Sprintf("unknown status %q (use active, trial or paused)", status), common.ErrInvalidConfig)
			}

			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			settings := sess.store.Settings()
			subs := insights.Search(sess.store.Subscriptions(), search, filter)
			if len(subs) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No matches found"))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("NAME"),
				cli.HeaderStyle.Render("CATEGORY"),
				cli.HeaderStyle.Render("CYCLE"),
				cli.HeaderStyle.Render("PRICE"),
				cli.HeaderStyle.Render("NEXT BILL"),
				cli.HeaderStyle.Render("STATUS"),
			}, "\t"))
			for _, sub := range subs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					sub.ID,
					sub.Name,
					sub.Category,
					sub.Cycle,
					currency.Format(sub.Price, settings.Currency),
					sub.NextBill.Format("2006-01-02"),
					cli.FormatStatus(sub.Status),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match name or category (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", "", "Only show active, trial or paused subscriptions")

	return cmd
}

func addCmd() *cobra.Command {
	var cycle, category string

	cmd := &cobra.Command{
		Use:   "add <name> <price>",
		Short: "Track a new subscription",
		Long: `Add a subscription priced in USD. It starts as Active with its next bill today.

An empty name or a price that is not a positive number adds nothing.`,
		Example: `  unroll add "YouTube Premium" 13.99
  unroll add JetBrains 249 --cycle yearly --category Software`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			sub, err := sess.store.Add(cmd.Context(), model.Draft{
				Name:     args[0],
				Price:    args[1],
				Cycle:    cycle,
				Category: category,
			})
			sess.flushNotifications(out)
			if err != nil {
				return err
			}
			if sub == nil {
				fmt.Fprintln(out, cli.FormatWarning("Nothing added: a name and a positive price are required"))
				return nil
			}

			fmt.Fprintf(out, "  %s #%d %s, %s %s\n",
				cli.WalletIcon,
				sub.ID,
				sub.Name,
				currency.Format(sub.Price, sess.store.Settings().Currency),
				strings.ToLower(string(sub.Cycle)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&cycle, "cycle", "monthly", "Billing cycle (monthly or yearly)")
	cmd.Flags().StringVar(&category, "category", "", "Category (default: "+model.DefaultCategory+")")

	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			if _, err := findSubscription(sess.store.Subscriptions(), ids[0]); err != nil {
				return err
			}

			err = sess.store.Remove(cmd.Context(), ids[0])
			sess.flushNotifications(cmd.OutOrStdout())
			return err
		},
	}
}

func cancelCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>...",
		Short: "Cut several subscriptions at once",
		Long: `Remove every listed subscription in a single write.

Ids that do not match a subscription are ignored.`,
		Example: `  unroll cancel 2 4
  unroll cancel 2 4 --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			subs := sess.store.Subscriptions()
			var matched []model.Subscription
			for _, id := range ids {
				if sub, findErr := findSubscription(subs, id); findErr == nil {
					matched = append(matched, sub)
				}
			}
			if len(matched) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No matching subscriptions. Nothing to cancel."))
				return nil
			}

			if !yes {
				savings := insights.Simulate(subs, ids)
				code := sess.store.Settings().Currency
				fmt.Fprintln(out, cli.FormatTitle("Confirm Cancellation"))
				fmt.Fprintf(out, "You are about to cancel %d subscriptions. This action cannot be undone automatically.\n", len(matched))
				for _, sub := range matched {
					fmt.Fprintf(out, "  • %s\n", sub.Name)
				}
				fmt.Fprintf(out, "%s Saves %s a year\n\n", cli.SavingsIcon, currency.Format(savings.Yearly, code))

				ok, confirmErr := cli.NewConfirmer(cmd.InOrStdin(), out).Confirm(cmd.Context(), "Yes, cut them?")
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(out, cli.SubtleStyle.Render("Kept them."))
					return nil
				}
			}

			err = sess.store.RemoveMany(cmd.Context(), ids)
			sess.flushNotifications(out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
