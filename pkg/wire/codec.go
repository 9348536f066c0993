package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/state"
)

// Payload sizes.
const (
	// DeviceNameFieldSize is the fixed name field including the NUL terminator.
	DeviceNameFieldSize = state.MaxDeviceNameLen + 1

	// SensorStatusSize is the encoded sensor status length.
	SensorStatusSize = DeviceNameFieldSize + 4 + 4 + 4

	// BeaconStatusSize is the encoded beacon status length.
	BeaconStatusSize = 16 + 2 + 2 + 4

	// MaxAccessPayload is the largest access payload a segmented message carries.
	MaxAccessPayload = 380
)

// Codec errors.
var (
	ErrShortPayload = errors.New("payload too short")
)

// byteOrder matches the collaborator's little-endian struct layout.
var byteOrder = binary.LittleEndian

// EncodeSensorStatus encodes a sensor reading as a sensor status payload.
// Names longer than the field are truncated on a rune boundary.
func EncodeSensorStatus(s state.SensorState) []byte {
	buf := make([]byte, SensorStatusSize)
	copy(buf, state.TruncateDeviceName(s.DeviceName))

	off := DeviceNameFieldSize
	byteOrder.PutUint32(buf[off:], math.Float32bits(s.Lux))
	byteOrder.PutUint32(buf[off+4:], uint32(s.Temperature))
	byteOrder.PutUint32(buf[off+8:], uint32(s.Humidity))
	return buf
}

// DecodeSensorStatus decodes a sensor status payload.
// Trailing bytes beyond SensorStatusSize are ignored.
func DecodeSensorStatus(data []byte) (state.SensorState, error) {
	if len(data) < SensorStatusSize {
		return state.SensorState{}, fmt.Errorf("%w: sensor status needs %d bytes, got %d",
			ErrShortPayload, SensorStatusSize, len(data))
	}

	name := data[:DeviceNameFieldSize]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	off := DeviceNameFieldSize
	return state.SensorState{
		DeviceName:  string(name),
		Lux:         math.Float32frombits(byteOrder.Uint32(data[off:])),
		Temperature: int32(byteOrder.Uint32(data[off+4:])),
		Humidity:    int32(byteOrder.Uint32(data[off+8:])),
	}, nil
}

// EncodeBeaconStatus encodes a beacon identity as a beacon status payload.
func EncodeBeaconStatus(b state.BeaconState) []byte {
	buf := make([]byte, BeaconStatusSize)
	copy(buf[:16], b.UUID[:])
	byteOrder.PutUint16(buf[16:], b.Major)
	byteOrder.PutUint16(buf[18:], b.Minor)
	byteOrder.PutUint32(buf[20:], uint32(b.RSSI))
	return buf
}

// DecodeBeaconStatus decodes a beacon status payload.
func DecodeBeaconStatus(data []byte) (state.BeaconState, error) {
	if len(data) < BeaconStatusSize {
		return state.BeaconState{}, fmt.Errorf("%w: beacon status needs %d bytes, got %d",
			ErrShortPayload, BeaconStatusSize, len(data))
	}

	var b state.BeaconState
	copy(b.UUID[:], data[:16])
	b.Major = byteOrder.Uint16(data[16:])
	b.Minor = byteOrder.Uint16(data[18:])
	b.RSSI = int32(byteOrder.Uint32(data[20:]))
	return b, nil
}
