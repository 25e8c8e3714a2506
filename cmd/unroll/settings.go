package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/currency"
	"github.com/Veraticus/unroll/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Example: `  unroll settings show
  unroll settings set currency EUR
  unroll settings set theme dark
  unroll settings set notifications off`,
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			settings := sess.store.Settings()
			notifications := "off"
			if settings.Notifications {
				notifications = "on"
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("name"), settings.Name)
			fmt.Fprintf(w, "%s\t%s (%s)\n", cli.HeaderStyle.Render("currency"), settings.Currency, currency.Symbol(settings.Currency))
			fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("notifications"), notifications)
			fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("theme"), settings.Theme)
			return w.Flush()
		},
	}
}

func setSettingCmd() *cobra.Command {
	keys := make([]string, len(model.SettingKeys))
	for i, k := range model.SettingKeys {
		keys[i] = string(k)
	}

	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one preference",
		Long:      "Change one preference. Keys: " + strings.Join(keys, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			key := model.SettingKey(strings.ToLower(args[0]))
			value := args[1]
			switch key {
			case model.SettingCurrency:
				value = strings.ToUpper(value)
			case model.SettingTheme:
				value = strings.ToLower(value)
			}

			err = sess.store.UpdateSetting(cmd.Context(), key, value)
			if errors.Is(err, common.ErrInvalidSetting) {
				return common.NewUserError(fmt.Sprintf("cannot set %s to %q", args[0], args[1]), err)
			}
			sess.flushNotifications(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if key == model.SettingName || key == model.SettingNotifications {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved "+string(key)))
			}
			return nil
		},
	}
}
