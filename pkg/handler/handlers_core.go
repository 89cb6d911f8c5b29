package handler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/matcher"
	"github.com/carlosabalde/wurfl-go/pkg/normalizer"
)

func containsAll(ua string, needles ...string) bool {
	for _, n := range needles {
		if !strings.Contains(ua, n) {
			return false
		}
	}
	return true
}

func containsAny(ua string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(ua, n) {
			return true
		}
	}
	return false
}

// --- JavaMidlet --------------------------------------------------------

func newJavaMidletHandler() *Handler {
	h := NewHandler("JavaMidlet", func(ua string, ctx *classifier.Context) bool {
		return strings.HasPrefix(ua, "UNTRUSTED/1.0")
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

// --- SmartTV -------------------------------------------------------------

var smartTVTokens = []string{"googletv", "boxee", "appletv", "smarttv", "smart-tv", "dlna", "netcast.tv", "viera", "inettvbrowser", "hbbtv", "roku"}

func newSmartTVHandler() *Handler {
	h := NewHandler("SmartTV", func(ua string, ctx *classifier.Context) bool {
		return ctx.IsSmartTV()
	}, normalizer.Generic())
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, len(ua))
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericMobile
	return h
}

// --- Kindle --------------------------------------------------------------

var kindleVersionRe = regexp.MustCompile(`Kindle/(\d)`)

func newKindleHandler() *Handler {
	h := NewHandler("Kindle", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Kindle")
	}, normalizer.Generic().Add(normalizer.Kindle))
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		tolerance := len(ua)
		if m := kindleVersionRe.FindStringSubmatch(ua); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 3 {
				idx := strings.Index(ua, "Kindle/")
				if idx >= 0 {
					tolerance = idx + len("Kindle/")
				}
			} else {
				tolerance = IndexOfOrLength(ua, deviceid.RISDelimiter, 0) + len(deviceid.RISDelimiter)
			}
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericWebBrowser
	return h
}

// --- LGUPLUS --------------------------------------------------------------

func newLGUPLUSHandler() *Handler {
	h := NewHandler("LGUPLUS", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "LGUPLUS") || (strings.Contains(ua, "LG-") && strings.Contains(ua, "WV"))
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

// --- Android ---------------------------------------------------------------

var (
	androidVersionRe   = regexp.MustCompile(`Android (\d\.\d)`)
	androidNamedRel    = map[string]string{
		"Cupcake": "1.5", "Donut": "1.6", "Eclair": "2.1",
		"Froyo": "2.2", "Gingerbread": "2.3", "Honeycomb": "3.0",
	}
	androidBuildOrWebkitTargets = []string{" Build/", " AppleWebKit"}

	// androidOperaMiniPrefixes is iteration-ordered: the first prefix the
	// UA starts with wins, and its length becomes the RIS tolerance.
	androidOperaMiniPrefixes = []string{
		"Opera/9.80 (J2ME/MIDP; Opera Mini/5",
		"Opera/9.80 (Android; Opera Mini/5.0",
		"Opera/9.80 (Android; Opera Mini/5.1",
	}

	operaOnAndroidVersionRe = regexp.MustCompile(`Version/(\d\d)`)
)

// androidConstantIDs is the full set of ids AndroidHandler's recovery tier
// is allowed to synthesize; a recovered id outside this set falls back to
// the handler's Default.
var androidConstantIDs = map[deviceid.ID]bool{
	"generic_android":       true,
	"generic_android_ver1_5": true,
	"generic_android_ver1_6": true,
	"generic_android_ver2":   true,
	"generic_android_ver2_1": true,
	"generic_android_ver2_2": true,
	"generic_android_ver2_3": true,
	"generic_android_ver3_0": true,
	"generic_android_ver3_1": true,
	"generic_android_ver3_2": true,
	"generic_android_ver3_3": true,
	"generic_android_ver4":   true,
	"generic_android_ver4_1": true,

	"uabait_opera_mini_android_v50":       true,
	"uabait_opera_mini_android_v51":       true,
	"generic_opera_mini_android_version5": true,

	"generic_android_ver1_5_opera_mobi":    true,
	"generic_android_ver1_5_opera_mobi_11": true,
	"generic_android_ver1_6_opera_mobi":    true,
	"generic_android_ver1_6_opera_mobi_11": true,
	"generic_android_ver2_0_opera_mobi":    true,
	"generic_android_ver2_0_opera_mobi_11": true,
	"generic_android_ver2_1_opera_mobi":    true,
	"generic_android_ver2_1_opera_mobi_11": true,
	"generic_android_ver2_2_opera_mobi":    true,
	"generic_android_ver2_2_opera_mobi_11": true,
	"generic_android_ver2_3_opera_mobi":    true,
	"generic_android_ver2_3_opera_mobi_11": true,
	"generic_android_ver4_0_opera_mobi":    true,
	"generic_android_ver4_0_opera_mobi_11": true,

	"generic_android_ver2_1_opera_tablet": true,
	"generic_android_ver2_2_opera_tablet": true,
	"generic_android_ver2_3_opera_tablet": true,
	"generic_android_ver3_0_opera_tablet": true,
	"generic_android_ver3_1_opera_tablet": true,
	"generic_android_ver3_2_opera_tablet": true,

	"generic_android_ver2_0_fennec":         true,
	"generic_android_ver2_0_fennec_tablet":  true,
	"generic_android_ver2_0_fennec_desktop": true,

	"generic_android_ver1_6_ucweb": true,
	"generic_android_ver2_0_ucweb": true,
	"generic_android_ver2_1_ucweb": true,
	"generic_android_ver2_2_ucweb": true,
	"generic_android_ver2_3_ucweb": true,

	"generic_android_ver2_0_netfrontlifebrowser": true,
	"generic_android_ver2_1_netfrontlifebrowser": true,
	"generic_android_ver2_2_netfrontlifebrowser": true,
	"generic_android_ver2_3_netfrontlifebrowser": true,
}

func newAndroidHandler() *Handler {
	h := NewHandler("Android", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Android")
	}, normalizer.Generic().Add(normalizer.Android))

	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		tolerance := androidTolerance(ua)
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}

	h.Recovery = androidRecoveryMatch
	h.ConstantIDs = androidConstantIDs
	h.Default = deviceid.GenericMobile
	return h
}

func androidTolerance(ua string) int {
	if idx := strings.Index(ua, deviceid.RISDelimiter); idx >= 0 {
		return idx + len(deviceid.RISDelimiter)
	}

	if strings.Contains(ua, "Opera Mini") {
		if strings.Contains(ua, " Build/") {
			return IndexOfOrLength(ua, " Build/", 0)
		}
		for _, prefix := range androidOperaMiniPrefixes {
			if strings.HasPrefix(ua, prefix) {
				return len(prefix)
			}
		}
		// Falls through: an Opera Mini UA matching neither of the above
		// still runs through the remaining checks below, same as the
		// original's sequence of independent (non-exclusive) ifs.
	}

	if strings.Contains(ua, "Opera Mobi") || strings.Contains(ua, "Opera Tablet") {
		return IndexOfOrLength(ua, "/", IndexOfOrLength(ua, "/", 0)+1)
	}
	if idx := strings.Index(ua, ")"); idx >= 0 && containsAny(ua, "Fennec", "Firefox") {
		return idx
	}
	if idx := strings.Index(ua, "UCWEB7"); idx >= 0 {
		tolerance := idx + len("UCWEB7")
		if tolerance > len(ua) {
			tolerance = len(ua)
		}
		return tolerance
	}
	if idx := strings.Index(ua, "NetFrontLifeBrowser/2.2"); idx >= 0 {
		tolerance := idx + len("NetFrontLifeBrowser/2.2")
		if tolerance > len(ua) {
			tolerance = len(ua)
		}
		return tolerance
	}
	return IndexOfAnyOrLength(ua, androidBuildOrWebkitTargets, 0)
}

// androidRecoveryMatch ports AndroidHandler.apply_recovery_match's full
// branch list (Opera Mini/Mobi/Tablet, UCWEB7, Fennec/Firefox,
// NetFrontLifeBrowser, plain Android), each validating its synthesized id
// against constant_ids before returning, falling back to a branch-specific
// default otherwise.
func androidRecoveryMatch(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
	if strings.Contains(ua, "Opera Mini") {
		return "generic_opera_mini_android_version5"
	}

	if strings.Contains(ua, "Opera Mobi") {
		base := "generic_android_ver" + strings.ReplaceAll(androidVersionOrDefault(ua), ".", "_") + "_opera_mobi"
		opera := operaOnAndroidVersion(ua)
		id := base
		// Opera Mobi 10 has no version suffix in its id (e.g.
		// generic_android_ver1_5_opera_mobi); anything else appends it.
		if opera != "10" {
			id = base + "_" + opera
		}
		if androidConstantIDs[deviceid.ID(id)] {
			return deviceid.ID(id)
		}
		return "generic_android_ver2_0_opera_mobi"
	}

	if strings.Contains(ua, "Opera Tablet") {
		ver := androidVersionFloatClamped(ua)
		id := "generic_android_ver" + ver + "_opera_tablet"
		if androidConstantIDs[deviceid.ID(id)] {
			return deviceid.ID(id)
		}
		return "generic_android_ver2_1_opera_tablet"
	}

	if strings.Contains(ua, "UCWEB7") {
		id := "generic_android_ver" + strings.ReplaceAll(androidVersionOrDefault(ua), ".", "_") + "_ucweb"
		if androidConstantIDs[deviceid.ID(id)] {
			return deviceid.ID(id)
		}
		return "generic_android_ver2_0_ucweb"
	}

	isFennec := strings.Contains(ua, "Fennec")
	isFirefox := strings.Contains(ua, "Firefox")
	if isFennec || isFirefox {
		if isFennec || strings.Contains(ua, "Mobile") {
			return "generic_android_ver2_0_fennec"
		}
		if isFirefox {
			if strings.Contains(ua, "Tablet") {
				return "generic_android_ver2_0_fennec_tablet"
			}
			if strings.Contains(ua, "Desktop") {
				return "generic_android_ver2_0_fennec_desktop"
			}
			return deviceid.NoMatch
		}
	}

	if strings.Contains(ua, "NetFrontLifeBrowser") {
		id := "generic_android_ver" + strings.ReplaceAll(androidVersionOrDefault(ua), ".", "_") + "_netfrontlifebrowser"
		if androidConstantIDs[deviceid.ID(id)] {
			return deviceid.ID(id)
		}
		return "generic_android_ver2_0_netfrontlifebrowser"
	}

	if strings.Contains(ua, "Froyo") {
		return "generic_android_ver2_2"
	}
	id := "generic_android_ver" + strings.ReplaceAll(androidVersionOrDefault(ua), ".", "_")
	switch id {
	case "generic_android_ver2_0":
		return "generic_android_ver2"
	case "generic_android_ver4_0":
		return "generic_android_ver4"
	}
	if androidConstantIDs[deviceid.ID(id)] {
		return deviceid.ID(id)
	}
	return "generic_android"
}

// defaultAndroidVersion is substituted whenever no Android version token
// is present in the UA at all.
const defaultAndroidVersion = "2.0"

func androidVersion(ua string) string {
	normalized := ua
	for name, num := range androidNamedRel {
		normalized = strings.ReplaceAll(normalized, name, num)
	}
	m := androidVersionRe.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	return m[1]
}

// androidVersionOrDefault is androidVersion with the original's
// use_default=True behavior: falls back to "2.0" rather than "".
func androidVersionOrDefault(ua string) string {
	if v := androidVersion(ua); v != "" {
		return v
	}
	return defaultAndroidVersion
}

// androidVersionFloatClamped mirrors get_android_version(ua) clamped to
// [2.1, 3.2] for the Opera Tablet branch, formatted back with a literal
// '.' (not '_') — the original's unicode(version).replace('u.', '_') never
// actually matches the substring "u.", so the Opera Tablet id it builds
// always has a dot where the other branches have an underscore, and so
// never matches a constant_ids entry; preserved here rather than "fixed",
// since only the Opera-Mobi append/replace bug is a documented correction.
func androidVersionFloatClamped(ua string) string {
	v, err := strconv.ParseFloat(androidVersionOrDefault(ua), 64)
	if err != nil {
		v = 0
	}
	switch {
	case v < 2.1:
		v = 2.1
	case v > 3.2:
		v = 3.2
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// operaOnAndroidVersion extracts the Opera-on-Android version from
// Version/NN, restricted to the two known values; anything else (or no
// match) defaults to "10".
func operaOnAndroidVersion(ua string) string {
	if m := operaOnAndroidVersionRe.FindStringSubmatch(ua); m != nil {
		if m[1] == "10" || m[1] == "11" {
			return m[1]
		}
	}
	return "10"
}

// --- Apple -------------------------------------------------------------

func newAppleHandler() *Handler {
	h := NewHandler("Apple", func(ua string, ctx *classifier.Context) bool {
		return containsAny(ua, "iPhone", "iPod", "iPad")
	}, normalizer.Generic())

	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		tolerance := len(ua)
		if idx := strings.Index(ua, "_"); idx >= 0 {
			tolerance = idx + 1
		} else if idx := strings.Index(ua, "like Mac OS X;"); idx >= 0 {
			tolerance = idx + 14
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}

	h.Recovery = func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
		family := "apple_iphone"
		switch {
		case strings.Contains(ua, "iPad"):
			family = "apple_ipad"
		case strings.Contains(ua, "iPod"):
			family = "apple_ipod"
		}
		ver := appleOSVersion(ua)
		if ver == "" {
			return deviceid.ID(family)
		}
		return deviceid.ID(family + "_ver" + ver)
	}
	h.Default = deviceid.GenericMobile
	return h
}

var appleOSVersionRe = regexp.MustCompile(`OS (\d+)(?:_\d+)?`)

func appleOSVersion(ua string) string {
	m := appleOSVersionRe.FindStringSubmatch(ua)
	if m == nil {
		return ""
	}
	return m[1]
}

// --- WindowsPhoneDesktop / WindowsPhone ---------------------------------

func newWindowsPhoneDesktopHandler() *Handler {
	h := NewHandler("WindowsPhoneDesktop", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "XBLWP7") || strings.Contains(ua, "ZuneWP7")
	}, normalizer.Generic())
	h.Default = deviceid.GenericWebBrowser
	return h
}

func newWindowsPhoneHandler() *Handler {
	h := NewHandler("WindowsPhone", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Windows Phone")
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

// --- NokiaOviBrowser / Nokia ---------------------------------------------

func newNokiaOviBrowserHandler() *Handler {
	h := NewHandler("NokiaOviBrowser", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "S40OviBrowser")
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

func newNokiaHandler() *Handler {
	h := NewHandler("Nokia", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Nokia")
	}, normalizer.Generic())
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		idx := strings.Index(ua, "Nokia")
		tolerance := len(ua)
		if idx >= 0 {
			tolerance = IndexOfAnyOrLength(ua, []string{"/", " "}, idx)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericMobile
	return h
}

// --- Samsung --------------------------------------------------------------

func newSamsungHandler() *Handler {
	h := NewHandler("Samsung", func(ua string, ctx *classifier.Context) bool {
		return containsAny(ua, "SEC-", "SAMSUNG-", "SCH", "Samsung", "SPH", "SGH")
	}, normalizer.Generic())
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		var tolerance int
		switch {
		case containsAny(ua, "SEC-", "SAMSUNG-", "SCH"):
			tolerance = IndexOfOrLength(ua, "/", 0)
		case containsAny(ua, "Samsung", "SPH", "SGH"):
			tolerance = IndexOfOrLength(ua, " ", 0)
		default:
			tolerance = IndexOfOrLength(ua, "/", IndexOfOrLength(ua, "/", 0)+1)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericMobile
	return h
}

// --- BlackBerry -----------------------------------------------------------

func newBlackBerryHandler() *Handler {
	h := NewHandler("BlackBerry", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "BlackBerry")
	}, normalizer.Generic())

	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		var tolerance int
		switch {
		case strings.HasPrefix(ua, "Mozilla/4"):
			tolerance = IndexOfOrLength(ua, "/", IndexOfOrLength(ua, "/", 0)+1)
		case strings.HasPrefix(ua, "Mozilla/5"):
			tolerance = nthIndexOrLength(ua, ";", 3)
		default:
			tolerance = IndexOfOrLength(ua, "/", 0)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}

	h.Recovery = func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
		version := blackBerryVersion(ua)
		if version == "" {
			return "generic_blackberry"
		}
		for _, entry := range blackBerryConstantIDs {
			if strings.Contains(version, entry.versionPrefix) {
				return deviceid.ID(entry.id)
			}
		}
		return "generic_blackberry"
	}
	h.Default = deviceid.GenericMobile
	return h
}

func nthIndexOrLength(s, sep string, n int) int {
	idx := -1
	for i := 0; i < n; i++ {
		next := strings.Index(s[idx+1:], sep)
		if next < 0 {
			return len(s)
		}
		idx = idx + 1 + next
	}
	return idx
}

// blackBerryVersionRe captures the first major.minor version number found
// after a BlackBerry model token, e.g. "BlackBerry9000/4.6.0.167" -> "4.6".
// The middle "." is deliberately an any-char wildcard, matching the
// original's un-escaped `\d.\d`.
var blackBerryVersionRe = regexp.MustCompile(`BlackBerry[^/\s]+/(\d.\d)`)

// blackBerryConstantIDs is ordered: a version is tested against each
// prefix in turn and the first substring match wins, same priority order
// as the original's constant_ids OrderedDict.
var blackBerryConstantIDs = []struct {
	versionPrefix string
	id            string
}{
	{"2.", "blackberry_generic_ver2"},
	{"3.2", "blackberry_generic_ver3_sub2"},
	{"3.3", "blackberry_generic_ver3_sub30"},
	{"3.5", "blackberry_generic_ver3_sub50"},
	{"3.6", "blackberry_generic_ver3_sub60"},
	{"3.7", "blackberry_generic_ver3_sub70"},
	{"4.1", "blackberry_generic_ver4_sub10"},
	{"4.2", "blackberry_generic_ver4_sub20"},
	{"4.3", "blackberry_generic_ver4_sub30"},
	{"4.5", "blackberry_generic_ver4_sub50"},
	{"4.6", "blackberry_generic_ver4_sub60"},
	{"4.7", "blackberry_generic_ver4_sub70"},
	{"4.", "blackberry_generic_ver4"},
	{"5.", "blackberry_generic_ver5"},
	{"6.", "blackberry_generic_ver6"},
}

func blackBerryVersion(ua string) string {
	m := blackBerryVersionRe.FindStringSubmatch(ua)
	if m == nil {
		return ""
	}
	return m[1]
}

// --- SonyEricsson / Motorola ------------------------------------------

func newSonyEricssonHandler() *Handler {
	h := NewHandler("SonyEricsson", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "SonyEricsson")
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

func newMotorolaHandler() *Handler {
	h := NewHandler("Motorola", func(ua string, ctx *classifier.Context) bool {
		return containsAny(ua, "Motorola", "MOT-", "Mot-")
	}, normalizer.Generic())
	h.Default = deviceid.GenericMobile
	return h
}

// --- HTCMac / WebOS --------------------------------------------------------

func newHTCMacHandler() *Handler {
	h := NewHandler("HTCMac", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "HTC") && strings.Contains(ua, "Mac OS X")
	}, normalizer.Generic().Add(normalizer.HTCMac))
	h.Default = deviceid.GenericMobile
	return h
}

func newWebOSHandler() *Handler {
	h := NewHandler("WebOS", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "webOS")
	}, normalizer.Generic().Add(normalizer.WebOS))
	h.Default = deviceid.GenericMobile
	return h
}

// --- DoCoMo -----------------------------------------------------------------

func newDoCoMoHandler() *Handler {
	h := NewHandler("DoCoMo", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "DoCoMo")
	}, normalizer.Generic())
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		tolerance := nthIndexOrLength(ua, "/", 2)
		if tolerance == len(ua) {
			tolerance = IndexOfOrLength(ua, "(", 0)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericMobile
	return h
}

// --- OperaMini ---------------------------------------------------------

// operaMinis is deliberately an ordered slice (not a map) since iteration
// order is the priority order: the first matching prefix wins.
var operaMinis = []struct {
	prefix string
	id     string
}{
	{"Opera Mini/9", "generic_opera_mini_version9"},
	{"Opera Mini/8", "generic_opera_mini_version8"},
	{"Opera Mini/7", "generic_opera_mini_version7"},
	{"Opera Mini/6", "generic_opera_mini_version6"},
	{"Opera Mini/5", "generic_opera_mini_version5"},
	{"Opera Mini/4", "generic_opera_mini_version4"},
}

func newOperaMiniHandler() *Handler {
	h := NewHandler("OperaMini", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Opera Mini")
	}, normalizer.Generic())

	h.Recovery = func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
		for _, entry := range operaMinis {
			if strings.Contains(ua, entry.prefix) {
				return deviceid.ID(entry.id)
			}
		}
		return "generic_opera_mini"
	}
	h.Default = deviceid.GenericMobile
	return h
}

// --- BotCrawlerTranscoder ------------------------------------------------

var botTokens = []string{
	"bot", "crawl", "spider", "slurp", "Googlebot", "bingbot", "YandexBot",
	"facebookexternalhit", "transcoder", "validator",
}

func newBotCrawlerTranscoderHandler() *Handler {
	h := NewHandler("BotCrawlerTranscoder", func(ua string, ctx *classifier.Context) bool {
		lower := strings.ToLower(ua)
		for _, t := range botTokens {
			if strings.Contains(lower, strings.ToLower(t)) {
				return true
			}
		}
		return false
	}, normalizer.Generic())
	h.Default = deviceid.Generic
	return h
}

// --- Chrome / Firefox / MSIE / Opera / Safari / Konqueror -----------------

func newChromeHandler() *Handler {
	h := NewHandler("Chrome", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Android")
	}, normalizer.Generic().Add(normalizer.Chrome))
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		idx := strings.Index(ua, "Chrome")
		tolerance := len(ua)
		if idx >= 0 {
			tolerance = IndexOfOrLength(ua, "/", idx)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericWebBrowser
	return h
}

func newFirefoxHandler() *Handler {
	h := NewHandler("Firefox", func(ua string, ctx *classifier.Context) bool {
		return containsAny(ua, "Firefox", "Fennec") && !strings.Contains(ua, "Android")
	}, normalizer.Generic().Add(normalizer.Firefox))
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		tolerance := IndexOfOrLength(ua, ".", 0)
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericWebBrowser
	return h
}

func newMSIEHandler() *Handler {
	h := NewHandler("MSIE", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "MSIE") || strings.Contains(ua, "Trident/")
	}, normalizer.Generic().Add(normalizer.MSIE))
	h.Recovery = func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
		if m := msieVersionRe.FindStringSubmatch(ua); m != nil {
			return deviceid.ID("msie_" + m[1])
		}
		return "generic_web_browser"
	}
	h.Default = deviceid.GenericWebBrowser
	return h
}

var msieVersionRe = regexp.MustCompile(`MSIE (\d+)`)

func newOperaHandler() *Handler {
	h := NewHandler("Opera", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Opera")
	}, normalizer.Generic().Add(normalizer.Opera))
	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		idx := strings.Index(ua, "Opera")
		tolerance := len(ua)
		if idx >= 0 {
			tolerance = IndexOfOrLength(ua, ".", idx)
		}
		match, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance)
		if !ok {
			return deviceid.NoMatch
		}
		id, _ := h.lookup(match)
		return id
	}
	h.Default = deviceid.GenericWebBrowser
	return h
}

func newSafariHandler() *Handler {
	h := NewHandler("Safari", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Safari") && !containsAny(ua, "Chrome", "Android", "iPhone", "iPod", "iPad")
	}, normalizer.Generic().Add(normalizer.Safari))
	h.Default = deviceid.GenericWebBrowser
	return h
}

func newKonquerorHandler() *Handler {
	h := NewHandler("Konqueror", func(ua string, ctx *classifier.Context) bool {
		return strings.Contains(ua, "Konqueror")
	}, normalizer.Generic().Add(normalizer.Konqueror))
	h.Default = deviceid.GenericWebBrowser
	return h
}

// --- CatchAll ---------------------------------------------------------

func newCatchAllHandler() *Handler {
	h := NewHandler("CatchAll", func(ua string, ctx *classifier.Context) bool {
		return true
	}, normalizer.Generic())

	h.Conclusive = func(h *Handler, ua string) deviceid.ID {
		match := deviceid.NoMatch

		if strings.HasPrefix(ua, "Mozilla") {
			bucket := "other"
			switch {
			case strings.HasPrefix(ua, "Mozilla/4"):
				bucket = "Mozilla/4"
			case strings.HasPrefix(ua, "Mozilla/5"):
				bucket = "Mozilla/5"
			}
			candidates := catchAllBucket(h.SortedKeys(), bucket)
			if id, ok := matcher.LDMatch(candidates, ua, 5); ok {
				match = lookupInSlice(h, id)
			}
		} else {
			tolerance := IndexOfOrLength(ua, "/", 0)
			if id, ok := matcher.RISMatch(h.SortedKeys(), ua, tolerance); ok {
				match = lookupInSlice(h, id)
			}
		}

		return match
	}

	h.Default = deviceid.Generic
	return h
}

func lookupInSlice(h *Handler, normalized string) deviceid.ID {
	id, _ := h.lookup(normalized)
	return id
}

// catchAllBucket partitions the CatchAll table's sorted keys by UA prefix,
// matching the three-way Mozilla/4, Mozilla/5, other split.
func catchAllBucket(sortedKeys []string, bucket string) []string {
	out := make([]string, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		switch bucket {
		case "Mozilla/4":
			if strings.HasPrefix(k, "Mozilla/4") {
				out = append(out, k)
			}
		case "Mozilla/5":
			if strings.HasPrefix(k, "Mozilla/5") {
				out = append(out, k)
			}
		default:
			if !strings.HasPrefix(k, "Mozilla/4") && !strings.HasPrefix(k, "Mozilla/5") {
				out = append(out, k)
			}
		}
	}
	return out
}
