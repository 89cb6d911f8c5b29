package classifier

import "testing"

func TestIsMobileBrowser(t *testing.T) {
	cases := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (Linux; Android 2.2; Nexus One Build/FRF91) AppleWebKit/533.1", true},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 5_0 like Mac OS X) AppleWebKit/534.46", true},
		{"Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko", false},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_5) AppleWebKit/537.36 Chrome/39.0", false},
	}
	for _, c := range cases {
		got := New(c.ua).IsMobileBrowser()
		if got != c.want {
			t.Errorf("IsMobileBrowser(%q) = %v, want %v", c.ua, got, c.want)
		}
	}
}

func TestIsDesktopBrowserHeavyDutyAnalysis(t *testing.T) {
	cases := []struct {
		ua   string
		want bool
	}{
		{"Opera/9.80 (Windows NT 6.1; U; en) Presto/2.7.62 Version/11.00", true},
		{"Opera/9.80 (Macintosh; Intel Mac OS X; U; en) Presto/2.7.62 Version/11.00", true},
		{"Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko", true},
		{"Mozilla/5.0 (Linux; Android 4.0.3; Nexus S Build/IML74K)", false},
		{"Opera/9.80 (Android; Opera Mini/7.0)", false},
	}
	for _, c := range cases {
		got := New(c.ua).IsDesktopBrowserHeavyDutyAnalysis()
		if got != c.want {
			t.Errorf("IsDesktopBrowserHeavyDutyAnalysis(%q) = %v, want %v", c.ua, got, c.want)
		}
	}
}

func TestGetMobileCatchAllID(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (Linux; Android 4.4.2)", "generic_android"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 7_0 like Mac OS X)", "apple_iphone"},
		{"Mozilla/5.0 (iPad; CPU OS 7_0 like Mac OS X)", "apple_ipad"},
		{"BlackBerry9000/4.6.0.167", "generic_blackberry"},
		{"Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko", ""},
	}
	for _, c := range cases {
		got := New(c.ua).GetMobileCatchAllID()
		if got != c.want {
			t.Errorf("GetMobileCatchAllID(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestContextMemoizesAcrossCalls(t *testing.T) {
	ctx := New("Mozilla/5.0 (Linux; Android 4.4.2)")
	first := ctx.IsMobileBrowser()
	second := ctx.IsMobileBrowser()
	if first != second {
		t.Fatalf("memoized IsMobileBrowser changed between calls: %v then %v", first, second)
	}
}
