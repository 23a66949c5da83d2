// Package platform sends desktop notifications through whatever the host
// offers: the freedesktop notification service, Notification Center, or
// Windows toasts.
package platform

import "time"

// DefaultTimeout is how long a notification stays up when Options leaves
// Timeout unset.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender.
	AppName string
	// IconPath, when non-empty, points to an image shown with the
	// notification where supported.
	IconPath string
	// Timeout bounds how long the notification is displayed.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
