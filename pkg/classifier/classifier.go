// Package classifier implements the shared user-agent classification used
// across the handler chain: mobile/desktop/smart-TV keyword scans and the
// heavier desktop-browser heuristic, all memoized per query behind an
// explicit Context value rather than the package-level mutable state the
// system this was ported from used.
package classifier

import (
	"regexp"
	"strings"
)

// Context carries one query's lowercased user-agent plus its memoized
// classification results. It is created once per Match/Filter call and
// threaded explicitly through the cascade — nothing here is global or
// shared across goroutines.
type Context struct {
	ua     string
	lower  string
	mobile *bool
	desk   *bool
	tv     *bool
}

// New builds a classification Context for a single query.
func New(ua string) *Context {
	return &Context{ua: ua, lower: strings.ToLower(ua)}
}

// UA returns the original (non-lowercased) user-agent this context was
// built from.
func (c *Context) UA() string { return c.ua }

// Lower returns the lowercased user-agent, computed once per query.
func (c *Context) Lower() string { return c.lower }

// mobileBrowserKeywords is the full keyword list (not the shorter
// illustrative subset): any case-insensitive substring match marks the UA
// as a mobile browser.
var mobileBrowserKeywords = []string{
	"nokia", "sonyericsson", "samsung", "lg/", "lg-", "motorola", "blackberry",
	"iphone", "ipod", "android", "mobile safari", "opera mini", "opera mobi",
	"windows ce", "windows phone", "palmsource", "palmos", "symbian",
	"series60", "series40", "maemo", "meego", "j2me", "midp", "wap2.0",
	"netfront", "teleca", "obigo", "up.browser", "up.link", "openwave",
	"vodafone", "docomo", "kddi", "softbank", "htc", "sharp", "panasonic",
	"philips", "alcatel", "bird", "kyocera", "mitsubishi", "mobile", "ucweb",
	"zunewp7", "silk", "untrusted",
}

var desktopBrowserKeywords = []string{
	"msie", "trident", "gecko", "presto", "applewebkit", "chrome", "safari",
	"firefox", "opera", "konqueror", "netscape",
}

var smartTVKeywords = []string{
	"smart-tv", "smarttv", "googletv", "appletv", "hbbtv", "boxee",
	"netcast", "viera", "inettvbrowser", "roku",
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// IsMobileBrowser reports whether the UA carries a mobile-browser keyword,
// memoized for the lifetime of the Context.
func (c *Context) IsMobileBrowser() bool {
	if c.mobile == nil {
		v := containsAny(c.lower, mobileBrowserKeywords)
		c.mobile = &v
	}
	return *c.mobile
}

// IsDesktopBrowser reports whether the UA carries a desktop-browser
// keyword, memoized for the lifetime of the Context.
func (c *Context) IsDesktopBrowser() bool {
	if c.desk == nil {
		v := containsAny(c.lower, desktopBrowserKeywords)
		c.desk = &v
	}
	return *c.desk
}

// IsSmartTV reports whether the UA carries a smart-TV keyword, memoized
// for the lifetime of the Context.
func (c *Context) IsSmartTV() bool {
	if c.tv == nil {
		v := containsAny(c.lower, smartTVKeywords)
		c.tv = &v
	}
	return *c.tv
}

var desktopOperaWindowsOrMacRe = regexp.MustCompile(`^Opera/9\.80 \(Windows NT|^Opera/9\.80 \(Macintosh`)

// IsDesktopBrowserHeavyDutyAnalysis combines several stronger signals
// (beyond the plain keyword scan) to decide whether an ambiguous UA is
// really a desktop browser. The Windows/Macintosh Opera prefix check is
// implemented as the two clearly-intended alternatives — the UA starting
// with "Opera/9.80 (Windows NT" OR "Opera/9.80 (Macintosh" — rather than a
// single malformed literal.
func (c *Context) IsDesktopBrowserHeavyDutyAnalysis() bool {
	ua := c.ua

	if desktopOperaWindowsOrMacRe.MatchString(ua) {
		return true
	}
	if strings.Contains(ua, "Windows NT") && strings.Contains(ua, "Trident/") {
		return true
	}
	if strings.Contains(ua, "Macintosh") && strings.Contains(ua, "Intel Mac OS X") && !strings.Contains(c.lower, "mobile") {
		return true
	}
	if strings.Contains(ua, "X11") && strings.Contains(ua, "Linux") && !strings.Contains(c.lower, "android") {
		return true
	}
	return false
}

// mobileCatchAllIDs is the priority-ordered table of substring -> device id
// used by the catch-all recovery tier when nothing more specific matched.
// Order matters: the first matching entry wins.
var mobileCatchAllIDs = []struct {
	substr string
	id     string
}{
	{"android", "generic_android"},
	{"iphone", "apple_iphone"},
	{"ipod", "apple_ipod"},
	{"ipad", "apple_ipad"},
	{"blackberry", "generic_blackberry"},
	{"windows phone", "generic_ms_winmo6_5"},
	{"symbian", "generic_symbian"},
	{"series60", "generic_series60"},
	{"series40", "nokiageneric_series40"},
	{"j2me", "generic_midp_midlet"},
	{"midp", "generic_midp_midlet"},
}

// GetMobileCatchAllID returns the device id paired with the first matching
// substring in the priority-ordered table, or "" if nothing matched.
func (c *Context) GetMobileCatchAllID() string {
	for _, entry := range mobileCatchAllIDs {
		if strings.Contains(c.lower, entry.substr) {
			return entry.id
		}
	}
	return ""
}
