// Package store owns the subscription collection and the user settings.
// Every mutation replaces the in-memory snapshot and then writes the whole
// collection or the whole settings object back to storage.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/insights"
	"github.com/Veraticus/unroll/internal/metrics"
	"github.com/Veraticus/unroll/internal/model"
	"github.com/Veraticus/unroll/internal/notify"
	"github.com/Veraticus/unroll/internal/service"
)

// Storage keys.
const (
	KeySubscriptions = "unroll_subs"
	KeySettings      = "unroll_settings"
)

// SaveFailedMessage is pushed when a snapshot could not be written.
const SaveFailedMessage = "Could not save changes"

// settingRules are the gookit/validate rules applied to a raw setting value.
var settingRules = map[model.SettingKey]string{
	model.SettingName:          "maxLen:80",
	model.SettingCurrency:      "required|in:USD,INR,EUR",
	model.SettingNotifications: "required|bool",
	model.SettingTheme:         "required|in:light,dark",
}

// Store is the single owner of subscriptions and settings.
type Store struct {
	kv       service.KeyValueStore
	feed     *notify.Feed
	metrics  metrics.Recorder
	now      func() time.Time
	subs     []model.Subscription
	settings model.UserSettings
	retry    service.RetryOptions
	nextID   int64
	mu       sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics records mutations and writes.
func WithMetrics(m metrics.Recorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRetryOptions sets the retry policy for snapshot writes.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(s *Store) {
		s.retry = opts
	}
}

// New creates a store backed by kv. The defaults are installed in memory
// until Initialize loads the persisted snapshot.
func New(kv service.KeyValueStore, feed *notify.Feed, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		feed:     feed,
		metrics:  metrics.Noop(),
		now:      time.Now,
		retry:    common.DefaultRetryOptions(),
		subs:     model.DefaultSubscriptions(),
		settings: model.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nextID = nextIDAfter(s.subs, 1)
	return s
}

// Initialize loads both keys independently. Missing or malformed data
// installs the defaults for that key and is never surfaced.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = s.loadSubscriptions(ctx)
	s.settings = s.loadSettings(ctx)
	s.nextID = nextIDAfter(s.subs, s.nextID)
	s.recordGauges()
}

func (s *Store) loadSubscriptions(ctx context.Context) []model.Subscription {
	raw, err := s.kv.Get(ctx, KeySubscriptions)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("Failed to read subscriptions, using defaults", "error", err)
		}
		return model.DefaultSubscriptions()
	}

	var subs []model.Subscription
	if err := json.Unmarshal(raw, &subs); err != nil || subs == nil {
		slog.Warn("Stored subscriptions are malformed, using defaults",
			"key", KeySubscriptions,
			"error", err)
		return model.DefaultSubscriptions()
	}
	return subs
}

func (s *Store) loadSettings(ctx context.Context) model.UserSettings {
	raw, err := s.kv.Get(ctx, KeySettings)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("Failed to read settings, using defaults", "error", err)
		}
		return model.DefaultSettings()
	}

	var settings model.UserSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		slog.Warn("Stored settings are malformed, using defaults",
			"key", KeySettings,
			"error", err)
		return model.DefaultSettings()
	}
	if err := validateSetting(model.SettingCurrency, string(settings.Currency)); err != nil {
		slog.Warn("Stored settings are invalid, using defaults", "error", err)
		return model.DefaultSettings()
	}
	if err := validateSetting(model.SettingTheme, string(settings.Theme)); err != nil {
		slog.Warn("Stored settings are invalid, using defaults", "error", err)
		return model.DefaultSettings()
	}
	return settings
}

// Subscriptions returns a copy of the current collection, newest first.
func (s *Store) Subscriptions() []model.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.subs)
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() model.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Add creates a subscription from draft. Invalid input is silently ignored
// and returns nil with no error.
func (s *Store) Add(ctx context.Context, draft model.Draft) (*model.Subscription, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Price = strings.TrimSpace(draft.Price)

	if v := validate.Struct(&draft); !v.Validate() {
		slog.Debug("Ignoring invalid draft", "error", v.Errors.One())
		return nil, nil
	}
	price, err := strconv.ParseFloat(draft.Price, 64)
	if err != nil || price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		slog.Debug("Ignoring draft with unparsable price", "price", draft.Price)
		return nil, nil
	}
	cycle, ok := model.ParseCycle(draft.Cycle)
	if !ok {
		slog.Debug("Ignoring draft with unknown cycle", "cycle", draft.Cycle)
		return nil, nil
	}
	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	s.mu.Lock()
	sub := model.Subscription{
		ID:       s.nextID,
		Name:     draft.Name,
		Price:    price,
		Cycle:    cycle,
		Category: category,
		NextBill: s.now().UTC(),
		Status:   model.StatusActive,
		Icon:     model.IconFor(draft.Name),
		Color:    model.DefaultColor,
	}
	s.nextID++
	s.subs = append([]model.Subscription{sub}, s.subs...)
	err = s.persistSubscriptions(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation("add")
	if err != nil {
		return &sub, err
	}
	s.notify("New service linked successfully", model.KindSuccess)
	return &sub, nil
}

// Remove deletes the subscription with id. An unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.subs, func(sub model.Subscription) bool { return sub.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.subs[idx]
	s.subs = slices.Delete(slices.Clone(s.subs), idx, idx+1)
	err := s.persistSubscriptions(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation("remove")
	if err != nil {
		return err
	}
	s.notify("Unlinked "+removed.Name, model.KindSuccess)
	return nil
}

// RemoveMany deletes every subscription whose id is in ids with a single
// write and a single notification. Nothing matching is a no-op.
func (s *Store) RemoveMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	selected := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	s.mu.Lock()
	kept := make([]model.Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if _, ok := selected[sub.ID]; !ok {
			kept = append(kept, sub)
		}
	}
	removed := len(s.subs) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return nil
	}
	s.subs = kept
	err := s.persistSubscriptions(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation("remove_many")
	if err != nil {
		return err
	}
	s.notify(fmt.Sprintf("Cancelled %d subscriptions", removed), model.KindSuccess)
	return nil
}

// UpdateSetting replaces one settings field. Invalid values return
// common.ErrInvalidSetting and leave the settings unchanged.
func (s *Store) UpdateSetting(ctx context.Context, key model.SettingKey, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}
	var enabled bool
	if key == model.SettingNotifications {
		parsed, err := strconv.ParseBool(normalizeBool(value))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", common.ErrInvalidSetting, key, err)
		}
		enabled = parsed
	}

	s.mu.Lock()
	next := s.settings
	var message string
	switch key {
	case model.SettingName:
		next.Name = strings.TrimSpace(value)
	case model.SettingCurrency:
		next.Currency = model.Currency(value)
		message = "Currency changed to " + value
	case model.SettingNotifications:
		next.Notifications = enabled
	case model.SettingTheme:
		next.Theme = model.Theme(value)
		if next.Theme == model.ThemeLight {
			message = "Light mode activated"
		} else {
			message = "Dark mode activated"
		}
	}
	s.settings = next
	err := s.persistSettings(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation("update_setting")
	if err != nil {
		return err
	}
	if message != "" {
		s.notify(message, model.KindSuccess)
	}
	return nil
}

// Reset reinstalls the default collection and settings and writes both keys.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = model.DefaultSubscriptions()
	s.settings = model.DefaultSettings()
	s.nextID = nextIDAfter(s.subs, s.nextID)

	s.metrics.IncMutation("reset")
	subsErr := s.persistSubscriptions(ctx)
	settingsErr := s.persistSettings(ctx)
	return errors.Join(subsErr, settingsErr)
}

func (s *Store) persistSubscriptions(ctx context.Context) error {
	s.recordGauges()
	return s.persist(ctx, KeySubscriptions, s.subs)
}

func (s *Store) persistSettings(ctx context.Context) error {
	return s.persist(ctx, KeySettings, s.settings)
}

// persist writes value under key, retrying transient failures. On final
// failure the in-memory state is kept and an error notification is pushed.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	start := time.Now()
	err = common.WithRetry(ctx, func() error {
		return s.kv.Put(ctx, key, payload)
	}, s.retry)
	s.metrics.ObservePersistence(time.Since(start), err)

	if err != nil {
		common.LogError(err, "Failed to persist snapshot", common.Fields{"key": key})
		s.notify(SaveFailedMessage, model.KindError)
		return fmt.Errorf("%w: %s: %w", common.ErrPersistence, key, err)
	}
	return nil
}

func (s *Store) notify(message string, kind model.NotificationKind) {
	if s.feed == nil {
		return
	}
	s.feed.Push(message, kind)
	s.metrics.IncNotification(string(kind))
}

// recordGauges must be called with s.mu held.
func (s *Store) recordGauges() {
	s.metrics.SetSubscriptions(len(s.subs), insights.MonthlyBurn(s.subs))
}

func validateSetting(key model.SettingKey, value string) error {
	rule, ok := settingRules[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", common.ErrInvalidSetting, key)
	}

	v := validate.Map(map[string]any{"value": value})
	v.StringRule("value", rule)
	if !v.Validate() {
		return fmt.Errorf("%w: %s: %s", common.ErrInvalidSetting, key, v.Errors.One())
	}
	return nil
}

// normalizeBool maps the toggle words accepted by the bool rule onto strconv's.
func normalizeBool(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "on", "yes":
		return "true"
	case "off", "no":
		return "false"
	default:
		return v
	}
}

// nextIDAfter returns the first id greater than every id in subs, never below floor.
func nextIDAfter(subs []model.Subscription, floor int64) int64 {
	next := floor
	for _, sub := range subs {
		if sub.ID >= next {
			next = sub.ID + 1
		}
	}
	return next
}
