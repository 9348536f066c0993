// Package log provides the node's telemetry event log.
//
// Telemetry is separate from operational logging (slog). Every provisioning
// transition, configuration change, model message and send failure is
// captured as a structured Event so operators can reconstruct what the node
// did without parsing log text.
//
// # Basic Usage
//
// Components accept a Logger. Pick an implementation per deployment:
//
//	// Console: forward events to slog
//	cfg.TelemetryLogger = log.NewSlogAdapter(slog.Default())
//
//	// Field capture: write CBOR events to a file
//	cfg.TelemetryLogger, _ = log.NewFileLogger("/var/log/mesh-node/node.mlog")
//
//	// Both
//	cfg.TelemetryLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are tagged with the layer that produced them:
//   - Stack: provisioning and configuration events from the mesh stack
//   - Model: model messages handled by the dispatcher
//   - Store: state cache updates
//
// Each event carries exactly one payload: MessageEvent, StateChangeEvent,
// ProvisioningEvent, ConfigEvent or ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .mlog extension.
// The mesh-log command views and summarizes them.
package log
