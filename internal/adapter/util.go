package adapter

import (
	"net/url"
	"strings"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// maxDescriptionLen is the adapter-side cap on description length.
const maxDescriptionLen = 500

// detectRemote infers the working arrangement from a best-effort text scan
// of title and description. Listings with no signal stay Unknown rather
// than being classified as on-site, so a remote-only filter never drops
// them on a false negative alone.
func detectRemote(title, description string) model.RemoteStatus {
	text := strings.ToLower(title + " " + description)

	hasRemote := strings.Contains(text, "remote")
	hasHybrid := strings.Contains(text, "hybrid")

	switch {
	case hasRemote && hasHybrid:
		return model.RemoteHybrid
	case strings.Contains(text, "fully remote"),
		strings.Contains(text, "100% remote"),
		strings.Contains(text, "work from home"):
		return model.RemoteYes
	case hasRemote:
		return model.RemoteYes
	case hasHybrid:
		return model.RemoteHybrid
	case strings.Contains(text, "on-site"),
		strings.Contains(text, "onsite"),
		strings.Contains(text, "in-office"):
		return model.RemoteNo
	}
	return model.RemoteUnknown
}

// matchesRemoteOnly reports whether a listing passes the remote-only
// filter. Only listings positively identified as on-site are dropped;
// Unknown passes, since the text scan often misses remote roles and a
// false negative would silently hide them.
func matchesRemoteOnly(status model.RemoteStatus) bool {
	return status != model.RemoteNo
}

// careersSearchURL builds a Google search link for the company's careers
// page. Derived deterministically from the company name.
func careersSearchURL(company string) string {
	q := url.Values{}
	q.Set("q", company+" careers jobs")
	return "https://www.google.com/search?" + q.Encode()
}

// truncateDescription caps a description at maxDescriptionLen characters.
func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionLen {
		return s
	}
	return string(runes[:maxDescriptionLen])
}

// intPtr converts a provider salary value to the optional int used by the
// model. Non-positive values are treated as absent: both APIs report 0 for
// listings without salary data.
func intPtr(v float64) *int {
	if v <= 0 {
		return nil
	}
	n := int(v)
	return &n
}
