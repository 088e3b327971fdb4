// Package urls validates the URL strings found in Cordova configuration files.
//
// Plugin names and specs may be registry ids, semantic versions or git
// repository URLs. IsValidGit is the check used to tell the last case apart.
package urls

import (
	"regexp"
	"strconv"
	"strings"
)

// schemes accepted before the "//" authority marker. A bare "//" is a
// protocol-relative URL and is accepted as well.
var schemes = []string{"http:", "https:", "ftp:", ""}

// authorityPattern matches everything after "//": optional user info, the host
// (dotted quad or DNS name with an alphabetic TLD), optional port and an
// optional path/query/fragment that contains no whitespace.
var authorityPattern = regexp.MustCompile(`(?i)^` +
	`(?:\S+(?::\S*)?@)?` +
	`(?:` +
	`(?P<ip>\d{1,3}(?:\.\d{1,3}){3})` +
	`|` +
	`(?:(?:[a-z0-9\x{00a1}-\x{ffff}]-*)*[a-z0-9\x{00a1}-\x{ffff}]+)` +
	`(?:\.(?:[a-z0-9\x{00a1}-\x{ffff}]-*)*[a-z0-9\x{00a1}-\x{ffff}]+)*` +
	`(?:\.[a-z\x{00a1}-\x{ffff}]{2,})\.?` +
	`)` +
	`(?::\d{2,5})?` +
	`(?:[/?#]\S*)?$`)

var ipGroup = authorityPattern.SubexpIndex("ip")

// IsValidURL reports whether s is an absolute http, https or ftp URL, or a
// protocol-relative one, pointing at a public host.
func IsValidURL(s string) bool {
	rest, ok := trimScheme(s)
	if !ok {
		return false
	}

	m := authorityPattern.FindStringSubmatch(rest)
	if m == nil {
		return false
	}
	if ip := m[ipGroup]; ip != "" {
		return isPublicIPv4(ip)
	}
	return true
}

// IsValidGit reports whether s is a valid URL that refers to a git repository.
func IsValidGit(s string) bool {
	return IsValidURL(s) && strings.Contains(s, ".git")
}

func trimScheme(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, scheme := range schemes {
		prefix := scheme + "//"
		if strings.HasPrefix(lower, prefix) {
			return s[len(prefix):], true
		}
	}
	return "", false
}

// isPublicIPv4 rejects loopback, private and link-local ranges as well as
// network and broadcast addresses.
func isPublicIPv4(ip string) bool {
	parts := strings.Split(ip, ".")
	octets := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
		octets[i] = n
	}

	a, b := octets[0], octets[1]
	switch {
	case a == 10, a == 127:
		return false
	case a == 169 && b == 254:
		return false
	case a == 192 && b == 168:
		return false
	case a == 172 && b >= 16 && b <= 31:
		return false
	}

	if a < 1 || a > 223 {
		return false
	}
	return octets[3] >= 1 && octets[3] <= 254
}
