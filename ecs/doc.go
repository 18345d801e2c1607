// Package ecs provides ECS adapters for breeze's widget events.
//
// The primary adapter is [NewDonburiSink], which forwards widget events
// (click, focus, blur) into a [Donburi] world as typed events. Subscribe to
// [WidgetEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	driver.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
