package node

import (
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/mesh"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/version"
	"github.com/IDALab-unisalento/wot-project-BIMData-mesh-tramonte-taurino/pkg/wire"
)

// ModelIDConfigServer is the SIG Configuration Server model.
const ModelIDConfigServer uint16 = 0x0000

// NewComposition builds the node's composition: one primary element with
// the configuration server and the sensor and iBeacon vendor servers.
func NewComposition(productID uint16, fw version.Firmware) *mesh.Composition {
	return &mesh.Composition{
		CompanyID: wire.CompanyIDEspressif,
		ProductID: productID,
		VersionID: fw.VersionID(),
		Elements: []mesh.Element{{
			SIGModels: []uint16{ModelIDConfigServer},
			VendorModels: []*mesh.Model{
				{
					CompanyID: wire.CompanyIDEspressif,
					ModelID:   mesh.ModelIDSensorServer,
					Opcodes:   []wire.Opcode{wire.OpSensorGet},
				},
				{
					CompanyID: wire.CompanyIDEspressif,
					ModelID:   mesh.ModelIDBeaconServer,
					Opcodes:   []wire.Opcode{wire.OpBeaconGet},
				},
			},
		}},
	}
}
