package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/currency"
	"github.com/Veraticus/unroll/internal/insights"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			settings := sess.store.Settings()
			code := settings.Currency
			summary := insights.Dashboard(sess.store.Subscriptions())

			first, _, _ := strings.Cut(settings.Name, " ")
			fmt.Fprintln(out, cli.FormatTitle(first+"'s Workspace"))
			fmt.Fprintf(out, "Monthly Burn:       %s\n", cli.BoldStyle.Render(currency.Format(summary.MonthlyBurn, code)))
			fmt.Fprintf(out, "Active Services:    %d of %d\n", summary.ActiveCount, summary.Total)
			fmt.Fprintf(out, "Potential Savings:  %s\n", currency.Format(summary.PotentialSavings, code))

			if summary.Trial != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Trial ending: %s will charge you %s",
					summary.Trial.Name, currency.Format(summary.Trial.Price, code))))
			}

			if len(summary.Categories) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.BoldStyle.Render(cli.ChartIcon+" By Category"))
				for _, c := range summary.Categories {
					fmt.Fprintf(out, "  %-14s %s (%d)\n", c.Category, currency.Format(c.Monthly, code), c.Count)
				}
			}

			if len(summary.Upcoming) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.BoldStyle.Render("Upcoming Renewals"))
				for _, sub := range summary.Upcoming {
					fmt.Fprintf(out, "  %-22s %s  %s\n", sub.Name, sub.NextBill.Format("Jan 2"), currency.Format(sub.Price, code))
				}
			}
			return nil
		},
	}
}

func savingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "savings <id>...",
		Short: "Simulate cutting subscriptions without removing them",
		Example: `  # What would dropping Netflix and Spotify save?
  unroll savings 1 2`,
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
			code := sess.store.Settings().Currency

			var names []string
			for _, id := range ids {
				if sub, findErr := findSubscription(subs, id); findErr == nil {
					names = append(names, sub.Name)
				}
			}
			savings := insights.Simulate(subs, ids)

			fmt.Fprintln(out, cli.FormatTitle("Simulate Your Savings"))
			if len(names) > 0 {
				fmt.Fprintf(out, "Cutting: %s\n", strings.Join(names, ", "))
			}
			fmt.Fprintf(out, "%s Yearly Savings:     %s\n", cli.SavingsIcon, cli.BoldStyle.Render(currency.Format(savings.Yearly, code)))
			fmt.Fprintf(out, "   Monthly Impact:     %s\n", currency.Format(savings.Monthly, code))
			fmt.Fprintf(out, "   Invested (%s APY): %s\n", growthLabel(), currency.Format(savings.ProjectedInvested, code))
			return nil
		},
	}
}

func growthLabel() string {
	return fmt.Sprintf("%.0f%%", insights.GrowthRate*100)
}
