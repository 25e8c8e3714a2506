package model

// Currency is a supported display currency code.
type Currency string

// Supported currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists the supported currencies in the order the settings view offers them.
var Currencies = []Currency{CurrencyINR, CurrencyUSD, CurrencyEUR}

// Theme is the presentation theme selector.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// SettingKey names a field of UserSettings that can be updated.
type SettingKey string

// Updatable setting keys.
const (
	SettingName          SettingKey = "name"
	SettingCurrency      SettingKey = "currency"
	SettingNotifications SettingKey = "notifications"
	SettingTheme         SettingKey = "theme"
)

// SettingKeys lists every updatable key.
var SettingKeys = []SettingKey{SettingName, SettingCurrency, SettingNotifications, SettingTheme}

// UserSettings holds the user's preferences. Exactly one instance exists per store.
type UserSettings struct {
	Name          string   `json:"name"`
	Currency      Currency `json:"currency"`
	Theme         Theme    `json:"theme"`
	Notifications bool     `json:"notifications"`
}

// DefaultSettings returns the settings installed when nothing is persisted.
func DefaultSettings() UserSettings {
	return UserSettings{
		Name:          "Felix Mitchell",
		Currency:      CurrencyINR,
		Notifications: true,
		Theme:         ThemeLight,
	}
}
