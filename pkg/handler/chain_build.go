package handler

// chainOrder is the fixed handler order every default chain is built with.
// Order is load-bearing per the cascade's partitioning rule: the first
// handler whose CanHandle accepts a UA owns it.
var chainOrder = []string{
	"JavaMidlet", "SmartTV",
	"Kindle", "LGUPLUS",
	"Android",
	"Apple", "WindowsPhoneDesktop", "WindowsPhone", "NokiaOviBrowser",
	"Nokia", "Samsung", "BlackBerry", "SonyEricsson", "Motorola",
	"Alcatel", "BenQ", "DoCoMo", "Grundig", "HTCMac", "HTC", "KDDI", "Kyocera",
	"LG", "Mitsubishi", "Nec", "Nintendo", "Panasonic", "Pantech", "Philips",
	"Portalmmm", "Qtek", "Reksio", "Sagem", "Sanyo", "Sharp", "Siemens",
	"SPV", "Toshiba", "Vodafone", "WebOS", "OperaMini",
	"BotCrawlerTranscoder",
	"Chrome", "Firefox", "MSIE", "Opera", "Safari", "Konqueror",
	"CatchAll",
}

// buildHandler dispatches to a handler's bespoke constructor, falling back
// to the shared trivial-single-manufacturer constructor when the name has
// no bespoke cascade behavior.
func buildHandler(name string, trivialByName map[string]trivialSpec) *Handler {
	switch name {
	case "JavaMidlet":
		return newJavaMidletHandler()
	case "SmartTV":
		return newSmartTVHandler()
	case "Kindle":
		return newKindleHandler()
	case "LGUPLUS":
		return newLGUPLUSHandler()
	case "Android":
		return newAndroidHandler()
	case "Apple":
		return newAppleHandler()
	case "WindowsPhoneDesktop":
		return newWindowsPhoneDesktopHandler()
	case "WindowsPhone":
		return newWindowsPhoneHandler()
	case "NokiaOviBrowser":
		return newNokiaOviBrowserHandler()
	case "Nokia":
		return newNokiaHandler()
	case "Samsung":
		return newSamsungHandler()
	case "BlackBerry":
		return newBlackBerryHandler()
	case "SonyEricsson":
		return newSonyEricssonHandler()
	case "Motorola":
		return newMotorolaHandler()
	case "DoCoMo":
		return newDoCoMoHandler()
	case "HTCMac":
		return newHTCMacHandler()
	case "WebOS":
		return newWebOSHandler()
	case "OperaMini":
		return newOperaMiniHandler()
	case "BotCrawlerTranscoder":
		return newBotCrawlerTranscoderHandler()
	case "Chrome":
		return newChromeHandler()
	case "Firefox":
		return newFirefoxHandler()
	case "MSIE":
		return newMSIEHandler()
	case "Opera":
		return newOperaHandler()
	case "Safari":
		return newSafariHandler()
	case "Konqueror":
		return newKonquerorHandler()
	case "CatchAll":
		return newCatchAllHandler()
	default:
		if spec, ok := trivialByName[name]; ok {
			return newTrivialHandler(spec)
		}
		panic("handler: no constructor registered for " + name)
	}
}

// NewDefaultChain builds the chain in the fixed order described above,
// covering the full family roster (bespoke cascades plus the trivial
// single-manufacturer handlers) terminated by CatchAll.
func NewDefaultChain() *Chain {
	trivialByName := make(map[string]trivialSpec, len(trivialHandlerSpecs))
	for _, spec := range trivialHandlerSpecs {
		trivialByName[spec.name] = spec
	}

	chain := NewChain()
	for _, name := range chainOrder {
		chain.AddHandler(buildHandler(name, trivialByName))
	}
	return chain
}
