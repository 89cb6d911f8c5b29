package normalizer

import (
	"regexp"
	"strings"
)

var babelFishRe = regexp.MustCompile(`\s*\(via babelfish\.yahoo\.com\)\s*`)

// BabelFish strips the Yahoo BabelFish translation-proxy trailer.
func BabelFish(ua string) string {
	return babelFishRe.ReplaceAllString(ua, "")
}

var blackBerryCaseRe = regexp.MustCompile(`(?i)blackberry`)

// BlackBerry normalizes mixed-case "BlackBerry" occurrences and, when the
// token appears after the start of the UA and the UA is not an
// AppleWebKit-based BlackBerry browser, trims everything before it.
func BlackBerry(ua string) string {
	ua = blackBerryCaseRe.ReplaceAllString(ua, "BlackBerry")
	index := strings.Index(ua, "BlackBerry")
	if index > 0 && !strings.Contains(ua, "AppleWebKit") {
		return ua[index:]
	}
	return ua
}

var localeTagRe = regexp.MustCompile(`\s*[\[(][a-zA-Z]{2}(-[a-zA-Z]{2})?[\])]`)

// LocaleRemover strips an embedded bracketed locale/language tag, e.g.
// "... Build/GRJ22) [en-us]" -> "... Build/GRJ22)".
func LocaleRemover(ua string) string {
	return localeTagRe.ReplaceAllString(ua, "")
}

var novarraGoogleTranslatorRe = regexp.MustCompile(`(\sNovarra-Vision.*)|(,gzip\(gfe\)\s+\(via translate\.google\.com\))`)

// NovarraGoogleTranslator strips the Novarra transcoding-proxy and Google
// Translate trailers.
func NovarraGoogleTranslator(ua string) string {
	return novarraGoogleTranslatorRe.ReplaceAllString(ua, "")
}

var serialNumbersRe = regexp.MustCompile(`(\[(TF|NT|ST)[\d|X]+\])|(/SN[\d|X]+)`)

// SerialNumbers strips embedded device serial-number tokens.
func SerialNumbers(ua string) string {
	return serialNumbersRe.ReplaceAllString(ua, "")
}

var (
	ucwebJUCPrefixRe  = regexp.MustCompile(`^(JUC \(Linux; U;)( \d)`)
	ucwebSpacerTokens = regexp.MustCompile(`Android|JUC|[;)]`)
	ucwebSpacerNext   = regexp.MustCompile(`^[\w(]`)
)

// UCWEB canonicalizes the UC Browser family's two distinct UA shapes (a
// bare "JUC (Linux; U; ...)" token and the "Mozilla/5.0(Linux;U;Android"
// variant) by inserting the separators UCWEB's own UA strings omit.
func UCWEB(ua string) string {
	if strings.HasPrefix(ua, "JUC") || strings.HasPrefix(ua, "Mozilla/5.0(Linux;U;Android") {
		ua = ucwebJUCPrefixRe.ReplaceAllString(ua, "$1 Android$2")
		var b strings.Builder
		last := 0
		for _, loc := range ucwebSpacerTokens.FindAllStringIndex(ua, -1) {
			b.WriteString(ua[last:loc[1]])
			last = loc[1]
			if ucwebSpacerNext.MatchString(ua[last:]) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(ua[last:])
		ua = b.String()
	}
	return ua
}

// UPLink trims the " UP.Link" gateway-version suffix some WAP gateways
// append to the UA they proxy.
func UPLink(ua string) string {
	index := strings.Index(ua, " UP.Link")
	if index > 0 {
		return ua[:index]
	}
	return ua
}

var yesWAPRe = regexp.MustCompile(`\s*Mozilla/4\.0 \(YesWAP mobile phone proxy\)`)

// YesWAP strips the YesWAP mobile-phone-proxy trailer.
func YesWAP(ua string) string {
	return yesWAPRe.ReplaceAllString(ua, "")
}
