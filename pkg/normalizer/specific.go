package normalizer

// Handler-specific normalizers. Each is appended to the shared generic
// pipeline (see Generic) by the handler of the same family; LG and LGUPLUS
// are defined but no handler's pipeline uses them. Every step here returns
// its input unchanged: no handler-specific UA rewrite is performed, so a
// normalized UA carries the "---" delimiter only if the raw UA already did.
// They're kept as distinct named steps so each handler's pipeline
// documents which family it belongs to.

// Android is a no-op placeholder for the Android handler's pipeline slot.
func Android(ua string) string { return ua }

// Chrome is a no-op placeholder for the Chrome handler's pipeline slot.
func Chrome(ua string) string { return ua }

// Firefox is a no-op placeholder for the Firefox handler's pipeline slot.
func Firefox(ua string) string { return ua }

// HTCMac is a no-op placeholder for the HTC-disguised-as-Mac handler's
// pipeline slot.
func HTCMac(ua string) string { return ua }

// Kindle is a no-op placeholder for the Kindle handler's pipeline slot.
func Kindle(ua string) string { return ua }

// Konqueror is a no-op placeholder for the Konqueror handler's pipeline slot.
func Konqueror(ua string) string { return ua }

// LG is a no-op placeholder for the LG handler's pipeline slot.
func LG(ua string) string { return ua }

// LGUPLUS is a no-op placeholder for the LG U+ handler's pipeline slot.
func LGUPLUS(ua string) string { return ua }

// MSIE is a no-op placeholder for the MSIE handler's pipeline slot.
func MSIE(ua string) string { return ua }

// Opera is a no-op placeholder for the Opera handler's pipeline slot.
func Opera(ua string) string { return ua }

// Safari is a no-op placeholder for the Safari handler's pipeline slot.
func Safari(ua string) string { return ua }

// WebOS is a no-op placeholder for the WebOS handler's pipeline slot.
func WebOS(ua string) string { return ua }
