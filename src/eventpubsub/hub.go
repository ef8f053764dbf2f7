package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Hub delivers events synchronously, in subscription order, on the publisher's goroutine.
// Handlers must not subscribe, unsubscribe or publish on the same hub.
type Hub struct {
	name string
	bus  EventBus.Bus
}

func NewHub(name string) *Hub {
	return &Hub{
		name: name,
		bus:  EventBus.New(),
	}
}

func (h *Hub) Publish(topic Topic, event interface{}) {
	log.Tracef("[%v] Published to topic %s", h.name, topic)
	h.bus.Publish(string(topic), event)
}

func (h *Hub) Subscribe(subscriberName string, topic Topic, callbackFn interface{}) error {
	if err := h.bus.Subscribe(string(topic), callbackFn); err != nil {
		return fmt.Errorf("Hub.Subscribe: %v: %w", subscriberName, err)
	}

	log.Debugf("[%v] %v subscribed to topic %s", h.name, subscriberName, topic)
	return nil
}

func (h *Hub) Unsubscribe(topic Topic, callbackFn interface{}) error {
	if err := h.bus.Unsubscribe(string(topic), callbackFn); err != nil {
		return fmt.Errorf("Hub.Unsubscribe: %v: %w", h.name, err)
	}

	return nil
}

func (h *Hub) HasSubscribers(topic Topic) bool {
	return h.bus.HasCallback(string(topic))
}
