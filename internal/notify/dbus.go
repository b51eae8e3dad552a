//go:build linux

package notify

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
)

const (
	appName  = "MoodPlayer"
	appEntry = "moodplayer"

	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = "org.freedesktop.Notifications"
)

// dbusNotifier sends notifications through the freedesktop notification service.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New creates a Notifier backed by the session bus.
// Without a session bus it returns a no-op notifier.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return stubNotifier{}, nil //nolint:nilerr // notifications are optional
	}
	return &dbusNotifier{obj: conn.Object(notifyDest, notifyPath)}, nil
}

// Notify calls Notify(app_name, replaces_id, icon, summary, body, actions,
// hints, timeout) and returns the notification id.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appEntry),
		"category":      dbus.MakeVariant("x-gnome.music"),
	}
	call := n.obj.Call(notifyIface+".Notify", 0,
		appName, notif.ReplacesID, notif.Icon, notif.Title, notif.Body,
		[]string{}, hints, notif.Timeout,
	)
	if call.Err != nil {
		return 0, errors.Wrap(call.Err, "send notification")
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, errors.Wrap(err, "read notification id")
	}
	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(notifyIface+".CloseNotification", 0, id).Err
}
