// Package commands implements the mesh-log CLI commands.
package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [node:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [node:%s] %-5s %s %s\n", ts, shortenNodeID(event.NodeID), event.Direction, event.Layer, eventType(event))

	if event.Address != 0 {
		fmt.Fprintf(w, "  Address: 0x%04X\n", event.Address)
	}

	switch {
	case event.Message != nil:
		formatMessageDetails(w, event.Direction, event.Message)
	case event.Provisioning != nil:
		formatProvisioningDetails(w, event.Provisioning)
	case event.Config != nil:
		formatConfigDetails(w, event.Config)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// eventType returns a short label for the payload the event carries.
func eventType(event log.Event) string {
	switch {
	case event.Message != nil:
		return event.Message.Opcode.String()
	case event.Provisioning != nil:
		return event.Provisioning.Event
	case event.Config != nil:
		return configName(event.Config)
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

func configName(c *log.ConfigEvent) string {
	switch {
	case c.AppKey != nil:
		return "AppKeyAdd"
	case c.ModelID != 0 || c.CompanyID != 0:
		return "ModelAppBind"
	default:
		return "Config"
	}
}

// shortenNodeID returns the first 8 characters of the node ID.
func shortenNodeID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatMessageDetails(w io.Writer, dir log.Direction, msg *log.MessageEvent) {
	if dir == log.DirectionIn {
		fmt.Fprintf(w, "  Kind: %s\n", msg.Kind)
	}
	if msg.Src != 0 || msg.Dst != 0 {
		fmt.Fprintf(w, "  Src: 0x%04X  Dst: 0x%04X\n", msg.Src, msg.Dst)
	}
	fmt.Fprintf(w, "  NetIdx: %d  AppIdx: %d\n", msg.NetIdx, msg.AppIdx)
	if msg.PayloadSize > 0 {
		fmt.Fprintf(w, "  Size: %d bytes\n", msg.PayloadSize)
	}
	if msg.ProcessingTime != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*msg.ProcessingTime))
	}
	if msg.Payload != nil {
		payloadJSON, err := json.Marshal(msg.Payload)
		if err == nil {
			fmt.Fprintf(w, "  Payload: %s\n", string(payloadJSON))
		}
	}
}

func formatProvisioningDetails(w io.Writer, p *log.ProvisioningEvent) {
	if p.Bearer != "" {
		fmt.Fprintf(w, "  Bearer: %s\n", p.Bearer)
	}
	if p.ErrCode != nil {
		fmt.Fprintf(w, "  ErrCode: %d\n", *p.ErrCode)
	}
	if p.Addr != 0 {
		fmt.Fprintf(w, "  NetIdx: 0x%03x  Addr: 0x%04X  Flags: 0x%02x  IVIndex: 0x%08x\n",
			p.NetIdx, p.Addr, p.Flags, p.IVIndex)
	}
}

func formatConfigDetails(w io.Writer, c *log.ConfigEvent) {
	fmt.Fprintf(w, "  Opcode: %s\n", c.Opcode)
	fmt.Fprintf(w, "  NetIdx: 0x%03x  AppIdx: 0x%03x\n", c.NetIdx, c.AppIdx)
	if c.AppKey != nil {
		fmt.Fprintf(w, "  AppKey: %s\n", hex.EncodeToString(c.AppKey))
	}
	if c.ModelID != 0 || c.CompanyID != 0 {
		fmt.Fprintf(w, "  Element: 0x%04X  Model: %04x:%04x\n", c.ElementAddr, c.CompanyID, c.ModelID)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "stack":
		return log.LayerStack, nil
	case "model":
		return log.LayerModel, nil
	case "store":
		return log.LayerStore, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be stack, model, or store)", s)
	}
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	case "local":
		return log.DirectionLocal, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in, out, or local)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "config":
		return log.CategoryConfig, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, config, or error)", s)
	}
}

// RunView writes every event matching opts to output. opts.Output is ignored.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
