package model

import "time"

// NotificationKind distinguishes confirmation toasts from failure toasts.
type NotificationKind string

// Notification kinds.
const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Kind      NotificationKind
}
