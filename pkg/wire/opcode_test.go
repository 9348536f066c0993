package wire

import "testing"

func TestOpcodeValues(t *testing.T) {
	tests := []struct {
		op   Opcode
		want uint32
	}{
		{OpSensorGet, 0xC002E5},
		{OpSensorStatus, 0xC102E5},
		{OpBeaconGet, 0xC202E5},
		{OpBeaconStatus, 0xC302E5},
	}

	for _, tt := range tests {
		if uint32(tt.op) != tt.want {
			t.Errorf("opcode = 0x%06X, want 0x%06X", uint32(tt.op), tt.want)
		}
	}
}

func TestOpcodeSize(t *testing.T) {
	tests := []struct {
		name string
		op   Opcode
		want int
	}{
		{"OneOctet", OpAppKeyAdd, 1},
		{"TwoOctet", OpModelAppBind, 2},
		{"Vendor", OpSensorGet, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOpcodeCompanyID(t *testing.T) {
	if got := OpBeaconGet.CompanyID(); got != CompanyIDEspressif {
		t.Errorf("CompanyID() = 0x%04X, want 0x%04X", got, CompanyIDEspressif)
	}
	if got := OpModelAppBind.CompanyID(); got != 0 {
		t.Errorf("SIG opcode CompanyID() = 0x%04X, want 0", got)
	}
}

func TestOpcodeString(t *testing.T) {
	if got := OpSensorStatus.String(); got != "0xC102E5" {
		t.Errorf("String() = %q, want %q", got, "0xC102E5")
	}
	if got := OpModelAppBind.String(); got != "0x803D" {
		t.Errorf("String() = %q, want %q", got, "0x803D")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		op   Opcode
		want Kind
	}{
		{"SensorGet", OpSensorGet, KindSensorGet},
		{"BeaconGet", OpBeaconGet, KindBeaconGet},
		{"SensorStatus", OpSensorStatus, KindUnhandled},
		{"BeaconStatus", OpBeaconStatus, KindUnhandled},
		{"OtherVendor", Opcode3(0x00, 0x0059), KindUnhandled},
		{"SIGOpcode", OpModelAppBind, KindUnhandled},
		{"Zero", 0, KindUnhandled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.op); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.op, got, tt.want)
			}
		})
	}
}

func TestStatusOpcode(t *testing.T) {
	if op, ok := StatusOpcode(KindSensorGet); !ok || op != OpSensorStatus {
		t.Errorf("StatusOpcode(SensorGet) = %s, %v", op, ok)
	}
	if op, ok := StatusOpcode(KindBeaconGet); !ok || op != OpBeaconStatus {
		t.Errorf("StatusOpcode(BeaconGet) = %s, %v", op, ok)
	}
	if _, ok := StatusOpcode(KindUnhandled); ok {
		t.Error("StatusOpcode(Unhandled) should report false")
	}
}
