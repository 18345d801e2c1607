// Package ecs provides ECS adapters for breeze.
package ecs

import (
	"github.com/phanxgames/breeze"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WidgetEventType is the Donburi event type for breeze widget events.
var WidgetEventType = events.NewEventType[breeze.WidgetEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on WidgetEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) breeze.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event breeze.WidgetEvent) {
	WidgetEventType.Publish(s.world, event)
}
