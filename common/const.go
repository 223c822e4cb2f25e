package common

// JSON-RPC method names exposed by the daemon.
const (
	MethodCreate     = "alarm.create"
	MethodRemove     = "alarm.remove"
	MethodSetEnabled = "alarm.setEnabled"
	MethodList       = "alarm.list"
	MethodVersion    = "system.getVersion"
)

// NotifyFired is the push notification broadcast to connected clients
// whenever an alarm fires.
const NotifyFired = "alarm.fired"
