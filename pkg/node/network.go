package node

import (
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/lifecycle"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/persistence"
)

// networkStore keeps lifecycle.NetworkInfo in the node state file.
type networkStore struct {
	file     *persistence.NodeStateStore
	firmware string
}

var _ lifecycle.NetworkStore = (*networkStore)(nil)

func (n *networkStore) SaveNetwork(info lifecycle.NetworkInfo) error {
	return n.file.Update(func(s *persistence.NodeState) {
		s.Firmware = n.firmware
		s.Network = &persistence.NetworkRecord{
			NetIdx:        info.NetIdx,
			Addr:          info.Addr,
			Flags:         info.Flags,
			IVIndex:       info.IVIndex,
			ProvisionedAt: info.ProvisionedAt,
		}
	})
}

func (n *networkStore) LoadNetwork() (*lifecycle.NetworkInfo, error) {
	s, err := n.file.Load()
	if err != nil || s == nil || s.Network == nil {
		return nil, err
	}
	return &lifecycle.NetworkInfo{
		NetIdx:        s.Network.NetIdx,
		Addr:          s.Network.Addr,
		Flags:         s.Network.Flags,
		IVIndex:       s.Network.IVIndex,
		ProvisionedAt: s.Network.ProvisionedAt,
	}, nil
}

func (n *networkStore) ClearNetwork() error {
	return n.file.Update(func(s *persistence.NodeState) {
		s.Network = nil
	})
}
