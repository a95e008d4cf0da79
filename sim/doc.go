// Package sim provides the core discrete-event simulation engine for chainsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - task.go: Task lifecycle (queued → processing → done/dead) and lifetime budget
//   - events.go: Event types that drive the simulation (TaskArrival, TaskCompletion)
//   - cluster.go: The ordered deployment chain, shared clock, and event loop
//
// # Architecture
//
// A Cluster owns a fixed, ordered chain of Deployments and the simulated
// clock. Each Deployment is an elastic pool of Pods fed by a bounded FIFO
// queue. Dispatching a task onto a Pod schedules a completion event on the
// cluster's event heap; Update(steps) advances the clock and fires every
// event that lands inside the window, in (timestamp, insertion sequence)
// order. All state mutation happens synchronously inside an update pass or
// an event callback, so the model needs no locking.
//
// Sub-packages:
//   - sim/workload/: synthetic traffic patterns producing arrival schedules
//   - sim/policy/: autoscaling policies emitting per-deployment scale actions
//
// The extension points are small interfaces: EventScheduler (clock plus
// event scheduling, implemented by Cluster) and policy.Autoscaler.
package sim
