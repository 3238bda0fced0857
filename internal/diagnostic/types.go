package diagnostic

import "time"

// Sentinel values substituted when the lookup cannot produce real data.
const (
	BlockedIP       = "Blocked"
	BlockedISP      = "VPN/Firewall Active"
	BlockedLocation = "Restricted"

	// DetectionBlockedIP is kept for lookups that report an explicit block.
	DetectionBlockedIP = "Detection Blocked"
	// UnavailableIP is used when the lookup answered without an address.
	UnavailableIP = "Unavailable"

	UnknownISP      = "Gateway"
	UnknownLocation = "Unknown"

	DirectConnection = "Direct"
	NotAvailable     = "N/A"
	StandardMemory   = "Standard"
)

// IsSentinelIP reports whether ip is a placeholder rather than an address.
func IsSentinelIP(ip string) bool {
	switch ip {
	case BlockedIP, DetectionBlockedIP, UnavailableIP:
		return true
	default:
		return false
	}
}

// NetworkInfo is the result of the public IP lookup.
type NetworkInfo struct {
	IP       string
	ISP      string
	Location string
}

// BlockedNetwork is the network facet used when the lookup fails.
func BlockedNetwork() NetworkInfo {
	return NetworkInfo{
		IP:       BlockedIP,
		ISP:      BlockedISP,
		Location: BlockedLocation,
	}
}

// Snapshot is one point-in-time collection of environment signals.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	CollectedAt time.Time `json:"collected_at"`

	// Network facet.
	IP             string `json:"ip"`
	ISP            string `json:"isp"`
	Location       string `json:"location"`
	ConnectionType string `json:"connection_type"`
	Downlink       string `json:"downlink"`
	RTT            string `json:"rtt"`

	// Local facet.
	UserAgent string `json:"user_agent"`
	Platform  string `json:"platform"`
	Cores     int    `json:"cores"`
	Memory    string `json:"memory"`
}

// Masked reports whether the public IP could not be determined.
func (s Snapshot) Masked() bool {
	return IsSentinelIP(s.IP)
}

// Severity tags a suggestion for rendering.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Suggestion is a rule-derived security recommendation.
type Suggestion struct {
	Severity Severity `json:"type"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Icon     string   `json:"icon"`
}
