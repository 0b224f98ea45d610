package api

// DeviceFlowState is the short-lived state returned by starting a GitHub
// device-code flow. The caller holds it across polling; this core keeps no
// copy.
type DeviceFlowState struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`

	// ExpiresIn is the lifetime of the device code in seconds.
	ExpiresIn int `json:"expires_in"`

	// Interval is the minimum number of seconds the caller should wait
	// between poll attempts.
	Interval int `json:"interval"`
}
