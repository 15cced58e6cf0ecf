package mailer

import (
	"fmt"
	"regexp"
)

// shareLinkRe matches the shareable "file view" form of a Drive-style link
// and captures the host and file id.
var shareLinkRe = regexp.MustCompile(`^(https://[^/]+)/file/d/([a-zA-Z0-9_-]+)`)

// NormalizeDriveLink rewrites a shareable Drive-style view URL into the
// direct content download form on the same host. Any other URL passes
// through unchanged.
func NormalizeDriveLink(url string) string {
	match := shareLinkRe.FindStringSubmatch(url)
	if match == nil {
		return url
	}
	return fmt.Sprintf("%s/uc?export=download&id=%s", match[1], match[2])
}
