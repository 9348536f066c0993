package lifecycle

import (
	"time"

	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/log"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// HandleProvisioningEvent is the provisioning callback registered with the
// stack. Unknown event types are ignored.
func (c *Controller) HandleProvisioningEvent(evt mesh.ProvisioningEvent) {
	switch evt.Type {
	case mesh.EventRegisterComplete:
		c.logProvisioning(evt)
		c.OnRegisterComplete(evt.ErrCode)
	case mesh.EventProvisioningEnableComplete:
		c.logProvisioning(evt)
		c.OnProvisionEnableComplete(evt.ErrCode)
	case mesh.EventLinkOpen:
		c.logProvisioning(evt)
		c.OnLinkOpen(evt.Bearer)
	case mesh.EventLinkClose:
		c.logProvisioning(evt)
		c.OnLinkClose(evt.Bearer)
	case mesh.EventProvisioningComplete:
		c.logProvisioning(evt)
		c.OnProvisioningComplete(evt.NetIdx, evt.Addr, evt.Flags, evt.IVIndex)
	case mesh.EventReset:
		c.logProvisioning(evt)
		c.OnReset()
	case mesh.EventUnprovisionedNameSetComplete:
		c.logProvisioning(evt)
		c.OnDeviceNameSetComplete(evt.ErrCode)
	default:
		c.logger.Debug("ignoring provisioning event", "type", evt.Type)
	}
}

// HandleConfigServerEvent is the config server callback registered with the
// stack. Only app key add and model app bind are of interest.
func (c *Controller) HandleConfigServerEvent(evt mesh.ConfigServerEvent) {
	switch evt.Op {
	case wire.OpAppKeyAdd:
		if evt.AppKeyAdd == nil {
			return
		}
		k := evt.AppKeyAdd
		c.OnAppKeyAdd(k.NetIdx, k.AppIdx, k.AppKey)
	case wire.OpModelAppBind:
		if evt.ModelAppBind == nil {
			return
		}
		b := evt.ModelAppBind
		c.OnModelAppBind(b.ElementAddr, b.AppIdx, b.CompanyID, b.ModelID)
	default:
		c.logger.Debug("ignoring config server event", "opcode", evt.Op)
	}
}

// OnRegisterComplete handles the stack's registration result.
func (c *Controller) OnRegisterComplete(errCode int) {
	if errCode != 0 {
		c.completionFailed(&mesh.StackError{Op: "register", Code: errCode})
		return
	}
	c.logger.Info("provisioning registered", "err_code", errCode)
}

// OnProvisionEnableComplete handles the result of enabling provisioning.
func (c *Controller) OnProvisionEnableComplete(errCode int) {
	if errCode != 0 {
		c.completionFailed(&mesh.StackError{Op: "enable provisioning", Code: errCode})
		return
	}
	c.logger.Info("provisioning enabled", "err_code", errCode)
}

// OnLinkOpen handles a provisioning link being opened.
func (c *Controller) OnLinkOpen(bearer mesh.Bearer) {
	c.logger.Info("provisioning link open", "bearer", bearer.String())
	c.setProvisioningState(ProvisioningLinkOpen, "link open on "+bearer.String())
	c.setState(StateLinkOpen, "link open on "+bearer.String())
}

// OnLinkClose handles a provisioning link being closed. Without a completed
// provisioning the node returns to advertising.
func (c *Controller) OnLinkClose(bearer mesh.Bearer) {
	c.logger.Info("provisioning link closed", "bearer", bearer.String())

	c.mu.RLock()
	state := c.state
	provisioned := c.network != nil
	c.mu.RUnlock()

	if state != StateLinkOpen {
		return
	}
	if provisioned {
		c.setProvisioningState(Provisioned, "link closed")
		c.setState(StateProvisioned, "link closed")
		return
	}
	c.setProvisioningState(Unprovisioned, "link closed before completion")
	c.setState(StateProvisioningEnabled, "link closed before completion")
}

// OnProvisioningComplete records the network parameters.
func (c *Controller) OnProvisioningComplete(netIdx, addr uint16, flags uint8, ivIndex uint32) {
	info := NetworkInfo{
		NetIdx:        netIdx,
		Addr:          addr,
		Flags:         flags,
		IVIndex:       ivIndex,
		ProvisionedAt: time.Now(),
	}
	c.logger.Info("provisioning complete",
		"net_idx", hex3(netIdx),
		"addr", hex4(addr),
		"flags", flags,
		"iv_index", ivIndex,
	)

	c.mu.Lock()
	c.network = &info
	c.mu.Unlock()

	if c.cfg.Network != nil {
		if err := c.cfg.Network.SaveNetwork(info); err != nil {
			c.logger.Warn("failed to save network info", "error", err)
		}
	}

	c.setProvisioningState(Provisioned, "provisioning complete")
	c.setState(StateProvisioned, "provisioning complete")
}

// OnReset handles a node reset: network parameters are discarded and
// provisioning is enabled again.
func (c *Controller) OnReset() {
	c.logger.Info("node reset")

	c.mu.Lock()
	c.network = nil
	c.mu.Unlock()

	if c.cfg.Network != nil {
		if err := c.cfg.Network.ClearNetwork(); err != nil {
			c.logger.Warn("failed to clear network info", "error", err)
		}
	}

	c.setProvisioningState(ProvisioningReset, "node reset")
	c.setState(StateReset, "node reset")

	if err := c.cfg.Stack.EnableProvisioning(c.cfg.Bearers); err != nil {
		c.logger.Error("failed to re-enable provisioning", "error", err)
		return
	}
	c.setState(StateProvisioningEnabled, "provisioning re-enabled after reset")
}

// OnDeviceNameSetComplete handles the result of setting the unprovisioned
// device name.
func (c *Controller) OnDeviceNameSetComplete(errCode int) {
	if errCode != 0 {
		c.completionFailed(&mesh.StackError{Op: "set unprovisioned name", Code: errCode})
		return
	}
	c.logger.Info("unprovisioned device name set")
}

// OnAppKeyAdd records an application key added by the configuration client.
func (c *Controller) OnAppKeyAdd(netIdx, appIdx uint16, appKey [16]byte) {
	c.logger.Info("app key added", "net_idx", hex4(netIdx), "app_idx", hex4(appIdx), "app_key", keyHex(appKey))
	c.logConfig(&log.ConfigEvent{
		Opcode: wire.OpAppKeyAdd,
		NetIdx: netIdx,
		AppIdx: appIdx,
		AppKey: appKey[:],
	})
}

// OnModelAppBind records an application key bound to a model.
func (c *Controller) OnModelAppBind(elemAddr, appIdx, companyID, modelID uint16) {
	c.logger.Info("model app bound",
		"elem_addr", hex4(elemAddr),
		"app_idx", hex4(appIdx),
		"cid", hex4(companyID),
		"mod_id", hex4(modelID),
	)
	c.logConfig(&log.ConfigEvent{
		Opcode:      wire.OpModelAppBind,
		AppIdx:      appIdx,
		ElementAddr: elemAddr,
		CompanyID:   companyID,
		ModelID:     modelID,
	})
}

// SetDeviceName changes the name advertised while unprovisioned.
func (c *Controller) SetDeviceName(name string) error {
	switch c.State() {
	case StateUninitialized, StateStackRegistered, StateFailed:
		return ErrNotInitialized
	}
	return c.cfg.Stack.SetUnprovisionedDeviceName(name)
}
