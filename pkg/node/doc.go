// Package node wires the sensor node together: state store, model
// dispatcher, lifecycle controller, telemetry and persistence, on top of a
// mesh.Stack supplied by the caller.
//
// Typical usage:
//
//	cfg := node.DefaultConfig()
//	cfg.DeviceName = "kitchen"
//	n, err := node.NewNode(stack, cfg)
//	if err != nil { ... }
//	if err := n.Start(ctx); err != nil { ... }
//	defer n.Stop()
//
//	// sensor driver goroutine
//	n.Store().UpdateSensorState(lux, humidity, temperature)
package node
