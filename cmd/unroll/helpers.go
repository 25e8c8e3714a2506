package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/config"
	"github.com/Veraticus/unroll/internal/metrics"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/notify"
	"github.com/Veraticus/unroll/internal/storage"
	"github.com/Veraticus/unroll/internal/store"
)

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return openStorage(ctx, cfg.DatabasePath)
}

func openStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("could not open the database at "+dbPath, err)
	}

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// session bundles everything a command needs to read or mutate records.
type session struct {
	config  *config.Config
	db      *storage.SQLiteStorage
	store   *store.Store
	feed    *notify.Feed
	metrics *metrics.Provider
}

// openSession opens the database and loads the persisted snapshot.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	db, err := openStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	provider := metrics.New()
	feed := notify.NewFeed(
		notify.WithTTL(cfg.NotificationTTL),
		notify.WithPushHook(func(n model.Notification) {
			slog.Debug("Notification", "kind", n.Kind, "message", n.Message)
		}),
	)

	s := store.New(db, feed, store.WithMetrics(provider))
	s.Initialize(ctx)

	slog.Debug("Session opened", "database", db.Path(), "subscriptions", len(s.Subscriptions()))

	return &session{
		config:  cfg,
		db:      db,
		store:   s,
		feed:    feed,
		metrics: provider,
	}, nil
}

// Close stops pending notification timers and closes the database.
func (s *session) Close() {
	s.feed.Close()
	if err := s.db.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// flushNotifications prints the queued toasts and clears them.
func (s *session) flushNotifications(w io.Writer) {
	for _, n := range s.feed.List() {
		if n.Kind == model.KindError {
			fmt.Fprintln(w, cli.FormatError(n.Message))
		} else {
			fmt.Fprintln(w, cli.FormatSuccess(n.Message))
		}
		s.feed.Dismiss(n.ID)
	}
}

// findSubscription returns the record with id, or ErrUnknownRecord.
func findSubscription(subs []model.Subscription, id int64) (model.Subscription, error) {
	for _, sub := range subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return model.Subscription{}, common.NewUserError(fmt.Sprintf("no subscription with id %d", id), common.ErrUnknownRecord)
}

// parseIDs converts positional arguments to subscription ids.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, common.NewUserError(fmt.Sprintf("%q is not a subscription id", arg), common.ErrUnknownRecord)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		if minutes := int(duration.Minutes()); minutes != 1 {
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		return "1 minute ago"
	case duration < 24*time.Hour:
		if hours := int(duration.Hours()); hours != 1 {
			return fmt.Sprintf("%d hours ago", hours)
		}
		return "1 hour ago"
	case duration < 7*24*time.Hour:
		if days := int(duration.Hours() / 24); days != 1 {
			return fmt.Sprintf("%d days ago", days)
		}
		return "yesterday"
	default:
		return t.Format("2006-01-02 15:04")
	}
}
