package request

// ManagerLoginRequest is the shared-passcode login for the manager
// screens (reports, cancellation, reset).
type ManagerLoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}
