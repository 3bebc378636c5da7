package client

import "github.com/sirupsen/logrus"

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a user-facing message about a failed call
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier surfaces failures to whoever drives the client (a terminal, a UI)
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the standard logrus logger
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	entry := logrus.WithField("title", n.Title)
	if n.Variant == VariantDestructive {
		entry.Error(n.Description)
		return
	}
	entry.Info(n.Description)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}
