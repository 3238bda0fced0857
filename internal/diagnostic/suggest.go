package diagnostic

import "fmt"

const (
	TitleIPExposed      = "IP Address Exposed"
	TitleIdentityMasked = "Identity Masked"
	TitleHardware       = "Hardware Profile"
	TitleUnencrypted    = "Unencrypted Path"
)

// Suggest derives the ordered suggestion list for a snapshot. secure reports
// whether the host transport is encrypted. Every applicable rule contributes.
func Suggest(s Snapshot, secure bool) []Suggestion {
	var list []Suggestion

	if !s.Masked() {
		list = append(list, Suggestion{
			Severity: SeverityWarning,
			Title:    TitleIPExposed,
			Text:     "Your public IP is visible. Use a VPN to mask your location.",
			Icon:     "user-secret",
		})
	} else {
		list = append(list, Suggestion{
			Severity: SeveritySuccess,
			Title:    TitleIdentityMasked,
			Text:     "Your network identity is obscured from trackers.",
			Icon:     "mask",
		})
	}

	if s.Cores > 0 {
		list = append(list, Suggestion{
			Severity: SeverityInfo,
			Title:    TitleHardware,
			Text:     fmt.Sprintf("%d CPU cores detectable via fingerprinting.", s.Cores),
			Icon:     "fingerprint",
		})
	}

	if !secure {
		list = append(list, Suggestion{
			Severity: SeverityWarning,
			Title:    TitleUnencrypted,
			Text:     "Browsing over insecure HTTP. Use HTTPS everywhere.",
			Icon:     "triangle-exclamation",
		})
	}

	return list
}
