// Package wire defines the access-layer opcodes and status payload layouts
// of the node's vendor models.
//
// # Opcodes
//
// Bluetooth mesh access messages start with a 1, 2 or 3 octet opcode.
// Vendor models use 3-octet opcodes: the first octet carries the
// vendor-specific opcode in its low six bits (with the top two bits set),
// followed by the 16-bit company identifier.
//
//	OpSensorGet    0xC002E5   request current sensor reading
//	OpSensorStatus 0xC102E5   sensor reading reply
//	OpBeaconGet    0xC202E5   request iBeacon identity
//	OpBeaconStatus 0xC302E5   iBeacon identity reply
//
// # Payloads
//
// Status payloads are fixed-layout, packed, little-endian records that
// match the collaborator's decoder byte for byte:
//
//	Sensor status (22 bytes)
//	  name[10]   NUL padded
//	  lux        float32
//	  temperature int32
//	  humidity    int32
//
//	Beacon status (24 bytes)
//	  uuid[16]
//	  major      uint16
//	  minor      uint16
//	  rssi       int32
package wire
