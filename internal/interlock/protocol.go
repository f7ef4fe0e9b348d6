// internal/interlock/protocol.go
package interlock

// Inbound command literals. Matching is exact and case-sensitive.
const (
	LineReset         = "RESET?"
	LineStatus        = "STATUS?"
	LineFaultRegister = "FAULT_REG?"
	LineDisable       = "DISABLE?"
	LineModel         = "RELIALOK?"
)

// Outbound reply tokens. Multi-token replies use a single space before the payload.
const (
	ReplyActive         = "ACTIVE"
	ReplyResetSuccess   = "RESET_SUCCESS"
	ReplyResetFail      = "RESET_FAIL"
	ReplyStatus         = "STATUS"
	ReplyFaultRegister  = "FAULT_REG"
	ReplyDeactive       = "DEACTIVE"
	ReplyDisableSuccess = "DISABLE_SUCCESS"
	ReplyManualReset    = "MANUAL_RESET"
	ReplyManualDisable  = "MANUAL_DISABLE"
	ReplyFault          = "FAULT"
)

// Model is the fixed identity string answered to RELIALOK?.
const Model = "OCTO-LOK"
