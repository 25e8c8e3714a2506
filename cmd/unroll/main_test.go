package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/currency"
	"github.com/Veraticus/unroll/internal/insights"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/storage"
)

// setupCLI points the commands at a fresh database under a temporary HOME.
func setupCLI(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	dbPath := filepath.Join(home, "data", "unroll.db")
	t.Setenv("UNROLL_DATABASE_PATH", dbPath)
	t.Setenv("UNROLL_LOGGING_LEVEL", "error")
	t.Cleanup(viper.Reset)
	return dbPath
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	require.NoError(t, err, "unroll %s", strings.Join(args, " "))
	return out
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)
	assert.Equal(t, "unroll dev\n", mustRun(t, "version"))
}

func TestListCommand(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "list")
	for _, sub := range model.DefaultSubscriptions() {
		assert.Contains(t, out, sub.Name)
	}
	assert.Contains(t, out, "NEXT BILL")

	out = mustRun(t, "list", "--status", "trial")
	assert.Contains(t, out, "Figma Professional")
	assert.NotContains(t, out, "Netflix Premium")

	out = mustRun(t, "list", "--search", "SOFT")
	assert.Contains(t, out, "Adobe Creative Cloud")
	assert.Contains(t, out, "Figma Professional")
	assert.NotContains(t, out, "Amazon Prime")

	assert.Contains(t, mustRun(t, "list", "--search", "zzz"), "No matches found")

	_, err := runCLI(t, "", "list", "--status", "cancelled")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestAddAndRemoveCommands(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "add", "YouTube Premium", "13.99")
	assert.Contains(t, out, "New service linked successfully")
	assert.Contains(t, out, "#7 YouTube Premium")

	out = mustRun(t, "add", "JetBrains", "249", "--cycle", "yearly", "--category", "Software")
	assert.Contains(t, out, "#8 JetBrains")
	assert.Contains(t, out, "yearly")

	list := mustRun(t, "list")
	assert.Contains(t, list, "YouTube Premium")
	assert.Less(t, strings.Index(list, "JetBrains"), strings.Index(list, "Netflix Premium"), "new records go first")

	out = mustRun(t, "add", "Gym", "abc")
	assert.Contains(t, out, "Nothing added")

	out = mustRun(t, "remove", "7")
	assert.Contains(t, out, "Unlinked YouTube Premium")
	assert.NotContains(t, mustRun(t, "list"), "YouTube Premium")

	_, err := runCLI(t, "", "remove", "99")
	assert.ErrorIs(t, err, common.ErrUnknownRecord)

	_, err = runCLI(t, "", "remove", "abc")
	assert.ErrorIs(t, err, common.ErrUnknownRecord)
}

func TestCancelCommand(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "y\n", "cancel", "2", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "You are about to cancel 2 subscriptions")
	assert.Contains(t, out, "Cancelled 2 subscriptions")

	list := mustRun(t, "list")
	assert.NotContains(t, list, "Spotify Duo")
	assert.NotContains(t, list, "Figma Professional")

	out, err = runCLI(t, "n\n", "cancel", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept them.")
	assert.Contains(t, mustRun(t, "list"), "Netflix Premium")

	out = mustRun(t, "cancel", "1", "99", "--yes")
	assert.Contains(t, out, "Cancelled 1 subscriptions")

	out = mustRun(t, "cancel", "99", "--yes")
	assert.Contains(t, out, "Nothing to cancel")
}

func TestSavingsCommand(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "savings", "1", "2")
	want := insights.Simulate(model.DefaultSubscriptions(), []int64{1, 2})

	assert.Contains(t, out, "Cutting: Netflix Premium, Spotify Duo")
	assert.Contains(t, out, currency.Format(want.Yearly, model.CurrencyINR))
	assert.Contains(t, out, currency.Format(want.Monthly, model.CurrencyINR))
	assert.Contains(t, out, "Invested (7% APY)")
	assert.Contains(t, out, currency.Format(want.ProjectedInvested, model.CurrencyINR))

	// Simulation never removes anything.
	assert.Contains(t, mustRun(t, "list"), "Netflix Premium")
}

func TestSummaryCommand(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "summary")
	assert.Contains(t, out, "Felix's Workspace")
	assert.Contains(t, out, "Active Services:    4 of 6")
	assert.Contains(t, out, "Trial ending: Figma Professional will charge you "+currency.Format(12, model.CurrencyINR))
	assert.Contains(t, out, "Potential Savings:  "+currency.Format(insights.PotentialSavings, model.CurrencyINR))
	assert.Contains(t, out, "Upcoming Renewals")
}

func TestSettingsCommands(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "settings", "show")
	assert.Contains(t, out, "Felix Mitchell")
	assert.Contains(t, out, "INR (₹)")

	assert.Contains(t, mustRun(t, "settings", "set", "currency", "eur"), "Currency changed to EUR")
	assert.Contains(t, mustRun(t, "settings", "set", "theme", "Dark"), "Dark mode activated")
	assert.Contains(t, mustRun(t, "settings", "set", "notifications", "off"), "Saved notifications")
	assert.Contains(t, mustRun(t, "settings", "set", "name", "Ada Lovelace"), "Saved name")

	out = mustRun(t, "settings", "show")
	assert.Contains(t, out, "EUR (€)")
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "off")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, mustRun(t, "summary"), "Ada's Workspace")

	_, err := runCLI(t, "", "settings", "set", "currency", "GBP")
	assert.ErrorIs(t, err, common.ErrInvalidSetting)
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, `cannot set currency to "GBP"`, userErr.UserMessage)

	_, err = runCLI(t, "", "settings", "set", "volume", "11")
	assert.ErrorIs(t, err, common.ErrInvalidSetting)

	assert.Contains(t, mustRun(t, "settings", "show"), "EUR (€)", "failed updates change nothing")
}

func TestCheckpointCommands(t *testing.T) {
	setupCLI(t)

	mustRun(t, "add", "Hulu", "7.99")
	out := mustRun(t, "checkpoint", "create", "--tag", "snap", "--description", "before cuts")
	assert.Contains(t, out, "Created checkpoint snap")
	assert.Contains(t, out, "Description: before cuts")

	mustRun(t, "cancel", "7", "1", "--yes")
	assert.NotContains(t, mustRun(t, "list"), "Hulu")

	out = mustRun(t, "checkpoint", "list")
	assert.Contains(t, out, "snap")
	assert.Contains(t, out, "manual")

	out = mustRun(t, "checkpoint", "restore", "snap", "--force")
	assert.Contains(t, out, "Restored from checkpoint snap")
	list := mustRun(t, "list")
	assert.Contains(t, list, "Hulu")
	assert.Contains(t, list, "Netflix Premium")

	assert.Contains(t, mustRun(t, "checkpoint", "list"), "auto", "restore keeps the replaced state")

	out, err := runCLI(t, "n\n", "checkpoint", "delete", "snap")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	out, err = runCLI(t, "y\n", "checkpoint", "delete", "snap")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted checkpoint snap")

	_, err = runCLI(t, "", "checkpoint", "restore", "snap", "--force")
	assert.ErrorIs(t, err, storage.ErrCheckpointNotFound)
}

func TestResetCommand(t *testing.T) {
	setupCLI(t)

	mustRun(t, "add", "Hulu", "7.99")
	mustRun(t, "settings", "set", "currency", "USD")

	out, err := runCLI(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "This will replace 7 tracked subscriptions")
	assert.Contains(t, out, "Reset canceled.")
	assert.Contains(t, mustRun(t, "list"), "Hulu")

	out, err = runCLI(t, "y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset to the sample subscriptions")
	assert.Contains(t, out, "Previous state saved as checkpoint auto-reset-")

	assert.NotContains(t, mustRun(t, "list"), "Hulu")
	assert.Contains(t, mustRun(t, "settings", "show"), "INR")
}

func TestMetricsCommand(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "metrics")
	assert.Contains(t, out, "unroll_subscriptions 6")
	assert.Contains(t, out, "# TYPE unroll_monthly_burn_usd gauge")
}

func TestInitConfig_InvalidLogLevel(t *testing.T) {
	setupCLI(t)
	t.Setenv("UNROLL_LOGGING_LEVEL", "loud")

	_, err := runCLI(t, "", "version")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDashboard_InvalidThemeOverride(t *testing.T) {
	setupCLI(t)
	t.Setenv("UNROLL_UI_THEME_OVERRIDE", "sepia")

	_, err := runCLI(t, "", "dashboard")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "42"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 42}, ids)

	for _, bad := range []string{"0", "-3", "x1"} {
		_, err := parseIDs([]string{bad})
		assert.ErrorIs(t, err, common.ErrUnknownRecord, bad)
	}
}

func TestUserMessage(t *testing.T) {
	wrapped := common.NewUserError("friendly", errors.New("low level"))
	assert.Equal(t, "friendly", userMessage(wrapped))
	assert.Equal(t, "plain", userMessage(errors.New("plain")))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "2.0 KB", formatFileSize(2048))
	assert.Equal(t, "1.5 MB", formatFileSize(3*512*1024))

	now := time.Date(2024, time.August, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		want string
		ago  time.Duration
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: time.Minute, want: "1 minute ago"},
		{ago: 5 * time.Minute, want: "5 minutes ago"},
		{ago: 3 * time.Hour, want: "3 hours ago"},
		{ago: 30 * time.Hour, want: "yesterday"},
		{ago: 3 * 24 * time.Hour, want: "3 days ago"},
		{ago: 10 * 24 * time.Hour, want: "2024-08-10 12:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRelativeTime(now.Add(-tt.ago), now))
	}
}
