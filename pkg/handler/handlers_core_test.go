package handler

import (
	"testing"

	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
)

// TestAndroidToleranceOperaMiniBranches exercises the two Opera-Mini
// tolerance rules ahead of the standard Build/AppleWebKit fallback: the
// " Build/" branch, and the three version-specific starts-with prefixes
// (tolerance = len(prefix)), matching the original's check order.
func TestAndroidToleranceOperaMiniBranches(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want int
	}{
		{
			name: "Opera Mini with Build/ token",
			ua:   "Opera/9.80 (Linux; Opera Mini/7.0.29952/28.2555; U; en) Build/123 Presto/2.8 Version/11.10",
			want: len("Opera/9.80 (Linux; Opera Mini/7.0.29952/28.2555; U; en)"),
		},
		{
			name: "J2ME/MIDP Opera Mini 5 prefix",
			ua:   "Opera/9.80 (J2ME/MIDP; Opera Mini/5.0.19315/1428; U; en) Presto/2.5.25 Version/10.54",
			want: len("Opera/9.80 (J2ME/MIDP; Opera Mini/5"),
		},
		{
			name: "Android Opera Mini 5.0 prefix",
			ua:   "Opera/9.80 (Android; Opera Mini/5.0.019273/18.738; U; en) Presto/2.4.18 Version/10.00",
			want: len("Opera/9.80 (Android; Opera Mini/5.0"),
		},
		{
			name: "Android Opera Mini 5.1 prefix",
			ua:   "Opera/9.80 (Android; Opera Mini/5.1.21214/19.999; U; en) Presto/2.4.18 Version/10.00",
			want: len("Opera/9.80 (Android; Opera Mini/5.1"),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := androidTolerance(c.ua); got != c.want {
				t.Fatalf("androidTolerance(%q) = %d, want %d", c.ua, got, c.want)
			}
		})
	}
}

// TestAndroidRecoveryOperaMobiAppendsVersionedBase confirms the recovered
// id keeps the Android version component (generic_android_ver<X_Y>) and
// appends, rather than replaces, the non-default Opera-on-Android version.
func TestAndroidRecoveryOperaMobiAppendsVersionedBase(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Opera/9.80 (Android 2.2; Linux; Opera Mobi/ADR-1111101157; U; en) Presto/2.9.201 Version/11.50"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver2_2_opera_mobi_11")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestAndroidRecoveryOperaMobiDefaultVersionOmitsSuffix confirms Opera
// Mobi version "10" keeps the bare versioned-base id with no suffix.
func TestAndroidRecoveryOperaMobiDefaultVersionOmitsSuffix(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Opera/9.80 (Android 1.6; Linux; Opera Mobi/ADR-1111101157; U; en) Presto/2.8 Version/10.00"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver1_6_opera_mobi")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestAndroidRecoveryOperaTabletFallsBackToDefault confirms the Opera
// Tablet branch's version string (formatted with a literal dot) never
// matches a constant_ids entry, so it always lands on the branch default.
func TestAndroidRecoveryOperaTabletFallsBackToDefault(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Opera/9.80 (Android 3.0; Linux; Opera Tablet/ADR-1111101157; U; en) Presto/2.9 Version/11.50"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver2_1_opera_tablet")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestAndroidRecoveryFennecMobile confirms a Fennec/Firefox-Mobile UA
// recovers to the fennec family id independent of Android version.
func TestAndroidRecoveryFennecMobile(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Mozilla/5.0 (Android; Mobile; rv:17.0) Gecko/17.0 Firefox/17.0 Fennec/17.0"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver2_0_fennec")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestAndroidRecoveryUCWEB7 confirms the UCWEB7 branch picks up the
// detected Android version rather than the UCWEB7 branch's own default.
func TestAndroidRecoveryUCWEB7(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Mozilla/5.0 (Linux; U; Android 2.3.6; en-us) AppleWebKit/533.1 (KHTML, like Gecko) UCWEB7.9.0.94/41/999"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver2_3_ucweb")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestAndroidRecoverySecondVersionNotInSeed confirms recovery works for an
// Android version beyond the one literal example (2.2) the spec names.
func TestAndroidRecoverySecondVersionNotInSeed(t *testing.T) {
	h := newAndroidHandler()
	h.Seal()

	ua := "Mozilla/5.0 (Linux; U; Android 2.3; en-us; Nexus S Build/GRJ22) AppleWebKit/533.1 (KHTML, like Gecko) Version/4.0 Mobile Safari/533.1"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("generic_android_ver2_3")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestBlackBerryVersionExtraction checks the major.minor extraction
// directly against a few model/version shapes, including a two-component
// version with no build/patch suffix at all.
func TestBlackBerryVersionExtraction(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"BlackBerry9000/4.6.0.167 Profile/MIDP-2.0 Configuration/CLDC-1.1", "4.6"},
		{"BlackBerry9700/3.2.1.66 Profile/MIDP-2.1 Configuration/CLDC-1.1", "3.2"},
		{"BlackBerry9300/2.0 Profile/MIDP-2.0 Configuration/CLDC-1.1", "2.0"},
		{"BlackBerry/no-version-here", ""},
	}
	for _, c := range cases {
		if got := blackBerryVersion(c.ua); got != c.want {
			t.Fatalf("blackBerryVersion(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

// TestBlackBerryRecoverySecondVersion confirms a BlackBerry version other
// than the spec's one literal example (4.6.0.167) recovers correctly via
// the ordered constant_ids substring match, not the flat 3-group regex
// the earlier implementation used.
func TestBlackBerryRecoverySecondVersion(t *testing.T) {
	h := newBlackBerryHandler()
	h.Seal()

	ua := "BlackBerry9700/3.2.1.66 Profile/MIDP-2.1 Configuration/CLDC-1.1 VendorID/611"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("blackberry_generic_ver3_sub2")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}

// TestBlackBerryRecoveryTwoComponentVersion confirms a two-component
// version (no patch digits at all) still recovers via the major-version
// bucket, which a three-group regex requiring a patch number would miss.
func TestBlackBerryRecoveryTwoComponentVersion(t *testing.T) {
	h := newBlackBerryHandler()
	h.Seal()

	ua := "BlackBerry9300/2.0 Profile/MIDP-2.0 Configuration/CLDC-1.1 VendorID/205"
	got := h.applyMatch(ua, classifier.New(ua))
	want := deviceid.ID("blackberry_generic_ver2")
	if got != want {
		t.Fatalf("applyMatch(%q) = %q, want %q", ua, got, want)
	}
}
