package sim

import (
	"fmt"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// ProvisioningData is what a provisioner hands to the node.
type ProvisioningData struct {
	Bearer  mesh.Bearer
	NetIdx  uint16
	Addr    uint16
	Flags   uint8
	IVIndex uint32
}

// Provision runs a provisioning session: link open, provisioning complete,
// link close. Element addresses are assigned from data.Addr upwards.
func (s *Stack) Provision(data ProvisioningData) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return mesh.ErrNotInitialized
	}
	if s.bearers == 0 {
		s.mu.Unlock()
		return fmt.Errorf("sim: provisioning not enabled")
	}
	if data.Bearer == 0 {
		data.Bearer = mesh.BearerADV
	}
	if s.bearers&data.Bearer == 0 {
		s.mu.Unlock()
		return fmt.Errorf("sim: bearer %s not enabled", data.Bearer)
	}
	s.mu.Unlock()

	if err := s.emitProvisioning(mesh.ProvisioningEvent{Type: mesh.EventLinkOpen, Bearer: data.Bearer}); err != nil {
		return err
	}

	err := s.enqueue(func() {
		s.mu.Lock()
		s.provisioned = true
		s.netIdx = data.NetIdx
		s.addr = data.Addr
		for i := range s.comp.Elements {
			for _, m := range s.comp.Elements[i].VendorModels {
				m.ElementAddr = data.Addr + uint16(i)
			}
		}
		cb := s.provCB
		s.mu.Unlock()

		if cb != nil {
			cb(mesh.ProvisioningEvent{
				Type:    mesh.EventProvisioningComplete,
				NetIdx:  data.NetIdx,
				Addr:    data.Addr,
				Flags:   data.Flags,
				IVIndex: data.IVIndex,
			})
		}
	})
	if err != nil {
		return err
	}

	return s.emitProvisioning(mesh.ProvisioningEvent{Type: mesh.EventLinkClose, Bearer: data.Bearer})
}

// AddAppKey simulates a Config AppKey Add from the provisioner.
func (s *Stack) AddAppKey(netIdx, appIdx uint16, key [16]byte) error {
	if !s.Provisioned() {
		return mesh.ErrNotProvisioned
	}
	return s.emitConfig(mesh.ConfigServerEvent{
		Op:        wire.OpAppKeyAdd,
		Ctx:       mesh.MessageContext{NetIdx: netIdx, RecvOp: wire.OpAppKeyAdd},
		AppKeyAdd: &mesh.AppKeyAdd{NetIdx: netIdx, AppIdx: appIdx, AppKey: key},
	})
}

// BindModel simulates a Config Model App Bind for the given vendor model.
func (s *Stack) BindModel(appIdx, companyID, modelID uint16) error {
	s.mu.Lock()
	provisioned := s.provisioned
	var m *mesh.Model
	if s.comp != nil {
		m = s.comp.FindModel(companyID, modelID)
	}
	netIdx := s.netIdx
	s.mu.Unlock()

	if !provisioned {
		return mesh.ErrNotProvisioned
	}
	if m == nil {
		return fmt.Errorf("sim: no model %04x:%04x", companyID, modelID)
	}

	return s.emitConfig(mesh.ConfigServerEvent{
		Op:  wire.OpModelAppBind,
		Ctx: mesh.MessageContext{NetIdx: netIdx, RecvOp: wire.OpModelAppBind},
		ModelAppBind: &mesh.ModelAppBind{
			ElementAddr: m.ElementAddr,
			AppIdx:      appIdx,
			CompanyID:   companyID,
			ModelID:     modelID,
		},
	})
}

// Reset simulates a Config Node Reset.
func (s *Stack) Reset() error {
	return s.enqueue(func() {
		s.mu.Lock()
		s.provisioned = false
		s.netIdx = 0
		s.addr = 0
		cb := s.provCB
		s.mu.Unlock()

		if cb != nil {
			cb(mesh.ProvisioningEvent{Type: mesh.EventReset})
		}
	})
}

// Request describes an inbound access message.
type Request struct {
	Src     uint16
	AppIdx  uint16
	TTL     uint8
	Opcode  wire.Opcode
	Payload []byte
}

// Deliver injects an inbound access message. The message is routed to the
// first model that accepts the opcode, or to the first vendor model when
// none does, so unknown opcodes still reach the model callback.
func (s *Stack) Deliver(req Request) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return mesh.ErrNotInitialized
	}
	models := s.comp.Models()
	netIdx := s.netIdx
	s.mu.Unlock()

	if len(models) == 0 {
		return fmt.Errorf("sim: composition has no vendor models")
	}
	target := models[0]
	for _, m := range models {
		if m.Accepts(req.Opcode) {
			target = m
			break
		}
	}

	return s.enqueue(func() {
		s.mu.Lock()
		cb := s.modelCB
		s.mu.Unlock()
		if cb == nil {
			return
		}
		cb(mesh.ModelOperationEvent{
			Opcode: req.Opcode,
			Model:  target,
			Ctx: &mesh.MessageContext{
				NetIdx:  netIdx,
				AppIdx:  req.AppIdx,
				Addr:    req.Src,
				RecvDst: target.ElementAddr,
				RecvTTL: req.TTL,
				RecvOp:  req.Opcode,
			},
			Payload: req.Payload,
		})
	})
}
