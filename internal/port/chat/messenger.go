// Package chat defines the messaging platform port (interface).
package chat

import "context"

// Messenger is the port interface for outward messaging operations.
// Implementations own the platform's view schemas and wire formats;
// callers supply only domain data.
type Messenger interface {
	// OpenCreateTaskModal opens the task creation form against the
	// given trigger token. channelID is carried through the form's
	// private metadata so submission notices can return to the
	// originating channel; it may be empty.
	OpenCreateTaskModal(ctx context.Context, triggerID, channelID string) error

	// OpenReminderModal opens the reminder dispatch form against the
	// given trigger token, carrying channelID like OpenCreateTaskModal.
	OpenReminderModal(ctx context.Context, triggerID, channelID string) error

	// SendDM sends a direct message to the given user.
	SendDM(ctx context.Context, userID, text string) error

	// SendEphemeral sends a message in channelID visible only to
	// userID.
	SendEphemeral(ctx context.Context, channelID, userID, text string) error
}
