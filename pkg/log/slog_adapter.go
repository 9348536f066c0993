package log

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// SlogAdapter writes telemetry events to an slog.Logger.
// Errors are logged at Error level, provisioning and configuration at Info,
// model messages and store updates at Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.NodeID != "" {
		attrs = append(attrs, slog.String("node_id", event.NodeID))
	}
	if event.Address != 0 {
		attrs = append(attrs, slog.String("addr", hex4(event.Address)))
	}

	switch {
	case event.Message != nil:
		m := event.Message
		attrs = append(attrs, slog.String("opcode", m.Opcode.String()))
		if m.Kind != 0 {
			attrs = append(attrs, slog.String("kind", m.Kind.String()))
		}
		if m.Src != 0 {
			attrs = append(attrs, slog.String("src", hex4(m.Src)))
		}
		if m.Dst != 0 {
			attrs = append(attrs, slog.String("dst", hex4(m.Dst)))
		}
		if m.PayloadSize > 0 {
			attrs = append(attrs, slog.Int("payload_size", m.PayloadSize))
		}
		if m.Payload != nil {
			attrs = append(attrs, slog.Any("payload", m.Payload))
		}
		if m.ProcessingTime != nil {
			attrs = append(attrs, slog.Duration("processing_time", *m.ProcessingTime))
		}
	case event.StateChange != nil:
		if event.StateChange.Entity == StateEntityProvisioning || event.StateChange.Entity == StateEntityStack {
			level = slog.LevelInfo
		}
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Provisioning != nil:
		level = slog.LevelInfo
		p := event.Provisioning
		attrs = append(attrs, slog.String("event", p.Event))
		if p.Bearer != "" {
			attrs = append(attrs, slog.String("bearer", p.Bearer))
		}
		if p.ErrCode != nil {
			attrs = append(attrs, slog.Int("err_code", *p.ErrCode))
		}
		if p.Addr != 0 {
			attrs = append(attrs,
				slog.String("net_idx", hex4(p.NetIdx)),
				slog.String("unicast", hex4(p.Addr)),
				slog.Uint64("flags", uint64(p.Flags)),
				slog.Uint64("iv_index", uint64(p.IVIndex)),
			)
		}
	case event.Config != nil:
		level = slog.LevelInfo
		c := event.Config
		attrs = append(attrs,
			slog.String("opcode", c.Opcode.String()),
			slog.String("net_idx", hex4(c.NetIdx)),
			slog.String("app_idx", hex4(c.AppIdx)),
		)
		if len(c.AppKey) > 0 {
			attrs = append(attrs, slog.String("app_key", hex.EncodeToString(c.AppKey)))
		}
		if c.ElementAddr != 0 {
			attrs = append(attrs,
				slog.String("elem_addr", hex4(c.ElementAddr)),
				slog.String("cid", hex4(c.CompanyID)),
				slog.String("mod_id", hex4(c.ModelID)),
			)
		}
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
		if event.Error.Opcode != nil {
			attrs = append(attrs, slog.String("opcode", event.Error.Opcode.String()))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "telemetry", attrs...)
}

func hex4(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
