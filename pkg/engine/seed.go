package engine

import (
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/handler"
	"github.com/carlosabalde/wurfl-go/pkg/registry"
)

// seedDevice is one built-in catalogue entry. The real catalogue is built
// by the out-of-scope XML processor from a WURFL dump (see spec.md §1); this
// is a small hand-picked set covering the families and recall scenarios
// spec.md §8 names, enough to make Identify/Find runnable end-to-end for
// the CLI and HTTP surface without an external data file.
type seedDevice struct {
	id               string
	ua               string
	parent           string
	actualDeviceRoot bool
	capabilities     map[string]string
}

var seedCatalogue = []seedDevice{
	{
		id: "root", ua: "", parent: "", actualDeviceRoot: false,
		capabilities: map[string]string{"is_wireless_device": "false", "device_os": "unknown"},
	},
	{
		id: "generic", ua: "", parent: "root", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Generic", "model_name": "Generic"},
	},
	{
		id: "generic_mobile", ua: "", parent: "generic", actualDeviceRoot: true,
		capabilities: map[string]string{"is_wireless_device": "true", "is_tablet": "false"},
	},
	{
		id: "generic_web_browser", ua: "", parent: "generic", actualDeviceRoot: true,
		capabilities: map[string]string{"is_wireless_device": "false"},
	},
	{
		id: "generic_xhtml", ua: "", parent: "generic", actualDeviceRoot: true,
		capabilities: map[string]string{"markup_xhtml_support": "true"},
	},

	// Android family.
	{
		id: "generic_android", ua: "Mozilla/5.0 (Linux; Android) AppleWebKit/533.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Generic", "device_os": "Android"},
	},
	{
		id: "generic_android_ver2_2", ua: "Mozilla/5.0 (Linux; U; Android 2.2; en-us; Nexus One Build/FRF91) AppleWebKit/533.1 (KHTML, like Gecko) Version/4.0 Mobile Safari/533.1",
		parent: "generic_android", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Google", "model_name": "Nexus One", "device_os_version": "2.2"},
	},
	{
		id: "generic_android_ver4_0", ua: "Mozilla/5.0 (Linux; U; Android 4.0.3; en-us; Galaxy Nexus Build/IML74K) AppleWebKit/535.7 (KHTML, like Gecko) CrMo/16.0.912.75 Mobile Safari/535.7",
		parent: "generic_android", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Samsung", "model_name": "Galaxy Nexus", "device_os_version": "4.0.3"},
	},
	{
		id: "generic_android_opera_mini", ua: "Opera/9.80 (Android; Opera Mini/7.0/28.2555; U; en) Presto/2.8.119 Version/11.10",
		parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Opera Mini", "device_os": "Android"},
	},
	{
		id: "generic_android_opera_mobi", ua: "Opera/9.80 (Android; Opera Mobi/ADR-1111101157; U; en) Presto/2.9.201 Version/11.50",
		parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Opera Mobile", "device_os": "Android"},
	},

	// Apple family.
	{
		id: "apple_iphone", ua: "Mozilla/5.0 (iPhone; CPU iPhone OS like Mac OS X) AppleWebKit/534.46", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Apple", "model_name": "iPhone"},
	},
	{
		id: "apple_iphone_ver5", ua: "Mozilla/5.0 (iPhone; CPU iPhone OS 5_0 like Mac OS X) AppleWebKit/534.46 (KHTML, like Gecko) Version/5.1 Mobile/9A334 Safari/7534.48.3",
		parent: "apple_iphone", actualDeviceRoot: true,
		capabilities: map[string]string{"device_os_version": "5.0"},
	},
	{
		id: "apple_ipad", ua: "Mozilla/5.0 (iPad; CPU OS like Mac OS X) AppleWebKit/534.46", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Apple", "model_name": "iPad", "is_tablet": "true"},
	},
	{
		id: "apple_ipod", ua: "Mozilla/5.0 (iPod; CPU iPhone OS like Mac OS X) AppleWebKit/534.46", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Apple", "model_name": "iPod touch"},
	},

	// BlackBerry family.
	{
		id: "generic_blackberry", ua: "BlackBerry9000/4.6.0.167 Profile/MIDP-2.0 Configuration/CLDC-1.1 VendorID/102", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "BlackBerry"},
	},
	{
		id: "blackberry_generic_ver4_sub60", ua: "BlackBerry9000/4.6.0.167 Profile/MIDP-2.0 Configuration/CLDC-1.1 VendorID/103",
		parent: "generic_blackberry", actualDeviceRoot: true,
		capabilities: map[string]string{"model_name": "BlackBerry 9000", "device_os_version": "4.6.0.167"},
	},

	// Windows Phone / MSIE / desktop browsers.
	{
		id: "generic_ms_winmo6_5", ua: "Mozilla/4.0 (compatible; MSIE 6.0; Windows CE; IEMobile 8.7.6)", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"device_os": "Windows Phone"},
	},
	{
		id: "msie_7", ua: "Mozilla/4.0 (compatible; MSIE 7.0; Windows NT 6.0)", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "MSIE", "mobile_browser_version": "7"},
	},
	{
		id: "msie_9", ua: "Mozilla/5.0 (compatible; MSIE 9.0; Windows NT 6.1; Trident/5.0)", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "MSIE", "mobile_browser_version": "9"},
	},

	// Opera Mini recovery ladder.
	{
		id: "generic_opera_mini_version5", ua: "Opera/9.80 (J2ME/MIDP; Opera Mini/5.0.19315/1428; U; en) Presto/2.5.25 Version/10.54",
		parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Opera Mini", "mobile_browser_version": "5.0"},
	},
	{
		id: "generic_opera_mini_version7", ua: "Opera/9.80 (J2ME/MIDP; Opera Mini/7.0.29952/28.2555; U; en) Presto/2.8.119 Version/11.10",
		parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Opera Mini", "mobile_browser_version": "7.0"},
	},

	// Trivial single-manufacturer handlers, one representative UA each.
	{id: "nokia_generic_series40", ua: "NokiaN70-1/5.0609.2.0.1 Series60/2.8 Profile/MIDP-2.0 Configuration/CLDC-1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Nokia"}},
	{id: "samsung_generic", ua: "SAMSUNG-GT-S5230/S5230XXII5 SHP/VPP/R5 Jasmine/1.0 Nextreaming SMM-MMS/1.2.0 profile/MIDP-2.0 configuration/CLDC-1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Samsung"}},
	{id: "sonyericsson_generic", ua: "SonyEricssonK800i/R1J Browser/SEMC-Browser/4.2 Profile/MIDP-2.0 Configuration/CLDC-1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Sony Ericsson"}},
	{id: "motorola_generic", ua: "MOT-L7/0A.52.31R MIB/2.2.1 Profile/MIDP-2.0 Configuration/CLDC-1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Motorola"}},
	{id: "lg_generic", ua: "LG-GC900/V10a Obigo/WAP2.0 Profile/MIDP-2.1 Configuration/CLDC-1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "LG"}},
	{id: "htc_generic", ua: "HTC_Touch_HD_T8282 Mozilla/4.0 (compatible; MSIE 6.0; Windows CE; IEMobile 7.11)", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "HTC"}},
	{id: "kyocera_generic", ua: "Kyocera/K9S Obigo/Q05A", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Kyocera"}},
	{id: "sharp_generic", ua: "SHARP-TQ-GX30/1.0 Profile/MIDP-1.0 Configuration/CLDC-1.0 UP.Browser/6.2.3.3.c.1.101 (GUI) MMP/2.0", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Sharp"}},
	{id: "panasonic_generic", ua: "Panasonic/VS3-W2126C SIE/1.0", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Panasonic"}},
	{id: "nintendo_wii", ua: "Opera/9.30 (Nintendo Wii; U; ; 2047-7; en)", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Nintendo", "model_name": "Wii"}},

	// Kindle / WebOS / smart TV.
	{id: "kindle_generic", ua: "Mozilla/4.0 (compatible; Linux 2.6.22) NetFront/3.4 Kindle/2.5 (screen 600x800)", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "Amazon", "model_name": "Kindle"}},
	{id: "webos_generic", ua: "Mozilla/5.0 (webOS/1.4.0; U; en-US) AppleWebKit/532.2 (KHTML, like Gecko) Version/1.0 Safari/532.2 Pre/1.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"brand_name": "HP", "device_os": "webOS"}},
	{id: "smarttv_generic", ua: "Mozilla/5.0 (Linux; U; en) AppleWebKit/537.1+ (KHTML, like Gecko) SmartTV Safari/538.1", parent: "generic_mobile", actualDeviceRoot: true,
		capabilities: map[string]string{"is_smart_tv": "true"}},

	// Chrome / Firefox / Safari / Opera / Konqueror desktop browsers.
	{id: "chrome_generic", ua: "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Chrome"}},
	{id: "firefox_generic", ua: "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:34.0) Gecko/20100101 Firefox/34.0", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Firefox"}},
	{id: "safari_generic", ua: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_5) AppleWebKit/600.1.25 (KHTML, like Gecko) Version/7.1 Safari/537.85.1", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Safari"}},
	{id: "opera_generic", ua: "Opera/9.80 (Windows NT 6.1; U; en) Presto/2.7.62 Version/11.00", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Opera"}},
	{id: "konqueror_generic", ua: "Mozilla/5.0 (compatible; Konqueror/4.5; Linux) KHTML/4.5.4 (like Gecko)", parent: "generic_web_browser", actualDeviceRoot: true,
		capabilities: map[string]string{"mobile_browser": "Konqueror"}},
}

// aliasUAs are UAs that should resolve to an already-registered id without
// themselves becoming a new registry entry, e.g. bot/crawler traffic
// falling through to the bare "generic" sentinel.
var aliasUAs = []struct {
	ua string
	id string
}{
	{"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "generic"},
	{"Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)", "generic"},
}

// loadSeedCatalogue registers every seedDevice with both the registry
// (parent-before-child, matching the order the out-of-scope XML processor
// would emit) and the handler chain's ingest path. A device with an empty
// ua (the taxonomy roots) is registered with the registry only: it exists
// purely as a capability-inheritance anchor, never as something a UA
// should resolve to directly.
func loadSeedCatalogue(chain *handler.Chain, devices *registry.Registry) (loaded, skipped int) {
	for _, d := range seedCatalogue {
		if err := devices.Register(d.id, d.ua, d.actualDeviceRoot, d.capabilities, d.parent); err != nil {
			skipped++
			continue
		}
		if d.ua != "" {
			chain.Filter(d.ua, deviceid.ID(d.id))
		}
		loaded++
	}
	for _, a := range aliasUAs {
		chain.Filter(a.ua, deviceid.ID(a.id))
		loaded++
	}
	return loaded, skipped
}
