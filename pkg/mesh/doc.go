// Package mesh defines the boundary between the node and the Bluetooth mesh
// stack.
//
// The stack itself (bearers, network and transport layers, provisioning
// crypto) is an external collaborator. This package only describes what the
// node needs from it: the three callback streams (provisioning, config
// server, model operations), the composition data handed over at init, and
// the single outbound primitive SendModelMessage.
//
// An in-process implementation for development and tests lives in
// pkg/mesh/sim; generated testify mocks live in pkg/mesh/mocks.
package mesh
