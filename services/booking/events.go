package booking

import (
	"fmt"

	"slotify/models"
)

// Notification fan-out for lifecycle transitions: every event produces an
// in-app record for the recipient plus an email copy. Channel failures are the
// dispatcher's problem, never the lifecycle's.

func bookingCreatedEvents(b *models.Booking) []models.NotificationEvent {
	title := "Booking received"
	message := fmt.Sprintf("Your booking for %s at %s has been received and is awaiting confirmation.",
		b.Date, formatTimeOfDay(b.Start))
	return []models.NotificationEvent{
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypeInApp, Title: title, Message: message},
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypeEmail, Title: title, Message: message},
	}
}

func bookingConfirmedEvents(b *models.Booking) []models.NotificationEvent {
	title := "Booking confirmed"
	message := fmt.Sprintf("Your booking for %s at %s has been confirmed.",
		b.Date, formatTimeOfDay(b.Start))
	return []models.NotificationEvent{
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypeInApp, Title: title, Message: message},
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypeEmail, Title: title, Message: message},
	}
}

// bookingCancelledEvents notifies the counterparty of the actor who cancelled:
// the provider hears about user cancellations and vice versa.
func bookingCancelledEvents(b *models.Booking, actor models.Actor) []models.NotificationEvent {
	recipient := b.UserID
	if actor.ID == b.UserID {
		recipient = b.ProviderID
	}
	title := "Booking cancelled"
	message := fmt.Sprintf("The booking for %s at %s has been cancelled. Reason: %s",
		b.Date, formatTimeOfDay(b.Start), b.Cancellation.Reason)
	return []models.NotificationEvent{
		{UserID: recipient, BookingID: b.ID, Type: models.NotificationTypeInApp, Title: title, Message: message},
		{UserID: recipient, BookingID: b.ID, Type: models.NotificationTypeEmail, Title: title, Message: message},
	}
}

func bookingCompletedEvents(b *models.Booking) []models.NotificationEvent {
	title := "Service completed"
	message := fmt.Sprintf("Your booking for %s is complete. Leave a review to tell us how it went!",
		b.Date)
	return []models.NotificationEvent{
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypeInApp, Title: title, Message: message},
		{UserID: b.UserID, BookingID: b.ID, Type: models.NotificationTypePush, Title: title, Message: message},
	}
}
