// Package notify is the outbound order-notification pipeline.
//
// A Dispatcher owns the fixed set of notification events. Other packages
// attach recipient filters to events through the NotificationGateway
// interface; on Dispatch every filter registered for the event runs in
// registration order, each receiving the previous filter's output. An
// empty recipient after filtering means the notification is skipped and
// nothing reaches the Sender.
package notify
