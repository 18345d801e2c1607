package ecs

import (
	"testing"

	"github.com/phanxgames/breeze"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []breeze.WidgetEvent
	WidgetEventType.Subscribe(world, func(w donburi.World, e breeze.WidgetEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(breeze.WidgetEvent{Type: breeze.EventClick, NodeID: 42, Name: "ok", X: 100, Y: 200})
	sink.EmitEvent(breeze.WidgetEvent{Type: breeze.EventFocus, NodeID: 7})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	WidgetEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != breeze.EventClick || e0.NodeID != 42 || e0.Name != "ok" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}
	if received[1].Type != breeze.EventFocus {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	WidgetEventType.Subscribe(world, func(w donburi.World, e breeze.WidgetEvent) { count1++ })
	WidgetEventType.Subscribe(world, func(w donburi.World, e breeze.WidgetEvent) { count2++ })

	sink.EmitEvent(breeze.WidgetEvent{Type: breeze.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_ReceivesButtonClick(t *testing.T) {
	world := donburi.NewWorld()
	host := breeze.NewHeadlessHost()
	d, err := breeze.NewDriver(host, nil, breeze.DefaultWindowConfig())
	if err != nil {
		t.Fatal(err)
	}
	d.SetEventSink(NewDonburiSink(world))

	var clicks int
	WidgetEventType.Subscribe(world, func(w donburi.World, e breeze.WidgetEvent) {
		if e.Type == breeze.EventClick {
			clicks++
		}
	})

	b := breeze.NewButton("ok")
	b.Width.ResetTo(80)
	b.Height.ResetTo(30)
	d.Root().AddChild(b)

	d.InjectClick(10, 10)
	d.Frame(16)
	d.Frame(16)
	WidgetEventType.ProcessEvents(world)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
