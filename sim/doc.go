// Package sim provides the concurrent warehouse simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - state.go: WarehouseState, the single shared aggregate and its lock
//   - mover.go: step-wise robot movement (rows first, then columns)
//   - supply.go / delivery.go: the two robot task state machines
//
// # Architecture
//
// Four actors run as goroutines under Simulator.Run:
//   - StockArrivalGenerator: per-kind Bernoulli arrivals into the supply queue
//   - OrderGenerator: random-interval orders into the order queue
//   - SupplyRobotController: supply queue -> supply station -> first empty slot
//   - DeliveryRobotController: order queue -> first matching slot -> delivery station
//
// Every state-affecting step is followed by a Publisher.Publish of a
// StateView. Publishers must not block; sim/hub provides a drop-on-full
// fan-out and www serves it over SSE and WebSocket.
//
// # Locking
//
// WarehouseState holds one mutex. Each method is one critical section; no
// lock is held across a robot movement. A robot task is therefore not
// atomic: between dequeue and the final slot write other actors run freely.
// With one robot per role no other actor can claim the same slot.
//
// # Known limitations
//
// A supply item that finds no empty slot is discarded, and an order that
// finds no stock is dropped. Neither is retried. Both are counted in
// Metrics and recorded in the task trace (sim/trace).
package sim
