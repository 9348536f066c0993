package dispatch

import (
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

func (d *Dispatcher) sensorStatus(req *Request) (*Response, error) {
	s := d.store.SensorState()

	d.logger.Info("mesh message sent",
		"device", s.DeviceName,
		"lux", s.Lux,
		"temperature", s.Temperature,
		"humidity", s.Humidity,
		"dst", req.Ctx.Addr,
	)

	return &Response{
		Opcode:  wire.OpSensorStatus,
		Payload: wire.EncodeSensorStatus(s),
		Fields: map[string]any{
			"device":      s.DeviceName,
			"lux":         s.Lux,
			"temperature": s.Temperature,
			"humidity":    s.Humidity,
		},
	}, nil
}

func (d *Dispatcher) beaconStatus(req *Request) (*Response, error) {
	b := d.store.BeaconState()

	d.logger.Info("mesh message sent",
		"uuid", b.UUID,
		"major", b.Major,
		"minor", b.Minor,
		"rssi", b.RSSI,
		"dst", req.Ctx.Addr,
	)

	return &Response{
		Opcode:  wire.OpBeaconStatus,
		Payload: wire.EncodeBeaconStatus(b),
		Fields: map[string]any{
			"uuid":  b.UUID.String(),
			"major": b.Major,
			"minor": b.Minor,
			"rssi":  b.RSSI,
		},
	}, nil
}
