package normalizer

// Generic returns the fixed, shared generic-normalizer pipeline every
// handler's chain-specific pipeline is built on top of. The order is
// load-bearing: several of these steps only fire when the UA still carries
// markers a later step would otherwise have removed.
func Generic() Pipeline {
	return New(
		UPLink,
		BlackBerry,
		YesWAP,
		BabelFish,
		SerialNumbers,
		NovarraGoogleTranslator,
		LocaleRemover,
		UCWEB,
	)
}
