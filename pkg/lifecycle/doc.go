// Package lifecycle brings the node onto the mesh network and tracks its
// provisioning state.
//
// The Controller registers the provisioning, config server and model
// callbacks with the stack, initializes the stack with the node's
// composition and enables provisioning. After that it only reacts to stack
// events:
//
//	Uninitialized -> StackRegistered -> ProvisioningEnabled
//	ProvisioningEnabled -> LinkOpen -> Provisioned
//	Provisioned -> (node reset) -> ProvisioningEnabled
//
// Any failure during Initialize leaves the controller in Failed; it does not
// retry. Configuration server events (app key add, model app bind) are
// recorded as telemetry only; key storage belongs to the stack.
package lifecycle
