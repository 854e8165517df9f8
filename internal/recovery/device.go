package recovery

import (
	"strings"

	"github.com/mssola/useragent"
)

// deviceSummary condenses a raw user-agent header into a short diagnostic
// label, e.g. "Chrome 120.0 on Linux x86_64 (mobile)".
func deviceSummary(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)

	name, version := ua.Browser()
	browser := strings.TrimSpace(name + " " + version)

	label := browser
	if os := ua.OS(); os != "" {
		if label != "" {
			label += " on " + os
		} else {
			label = os
		}
	}
	if label == "" {
		return ""
	}
	if ua.Mobile() {
		label += " (mobile)"
	}
	return label
}

// withDevice fills Metadata.Device from the user agent when the caller has
// not set one.
func withDevice(meta Metadata) Metadata {
	if meta.Device == "" && meta.UserAgent != "" {
		meta.Device = deviceSummary(meta.UserAgent)
	}
	return meta
}
