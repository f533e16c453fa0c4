// Package notifier bridges the Kafka event topics to the WebSocket hub:
// committed events come back off the broker and are fanned out to the users
// they concern.
package notifier

import (
	"encoding/json"
	"log/slog"

	"github.com/pitchside/transfer-market-service/internal/domain"
	publisher "github.com/pitchside/transfer-market-service/internal/infrastructure/kafka"
)

// UserNotifier is the hub-facing side of the dispatcher.
type UserNotifier interface {
	SendToUser(userID string, v any)
}

type Dispatcher struct {
	subscriber domain.SubscriberPort
	notifier   UserNotifier
	groupID    string
}

func NewDispatcher(subscriber domain.SubscriberPort, notifier UserNotifier, groupID string) *Dispatcher {
	return &Dispatcher{
		subscriber: subscriber,
		notifier:   notifier,
		groupID:    groupID,
	}
}

// Start consumes both event topics until their channels close.
func (d *Dispatcher) Start() error {
	rosterMsgs, err := d.subscriber.Subscribe(publisher.RosterEventsTopic, d.groupID)
	if err != nil {
		return err
	}
	tradeMsgs, err := d.subscriber.Subscribe(publisher.TradeEventsTopic, d.groupID)
	if err != nil {
		return err
	}

	go d.consumeRosterEvents(rosterMsgs)
	go d.consumeTradeEvents(tradeMsgs)
	return nil
}

func (d *Dispatcher) consumeRosterEvents(msgs <-chan domain.Message) {
	for msg := range msgs {
		var event publisher.RosterReadyEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("failed to decode roster event", "error", err.Error())
			continue
		}
		d.notifier.SendToUser(event.UserID, event)
	}
}

func (d *Dispatcher) consumeTradeEvents(msgs <-chan domain.Message) {
	for msg := range msgs {
		var event publisher.TradeCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("failed to decode trade event", "error", err.Error())
			continue
		}
		// Both sides of the trade get the notification.
		d.notifier.SendToUser(event.BuyerUserID, event)
		d.notifier.SendToUser(event.SellerUserID, event)
	}
}
