package htmx

// Response headers.
const (
	HeaderHXLocation   = "HX-Location"
	HeaderHXPushURL    = "HX-Push-Url"
	HeaderHXRedirect   = "HX-Redirect"
	HeaderHXRefresh    = "HX-Refresh"
	HeaderHXReplaceURL = "HX-Replace-Url"
	HeaderHXReswap     = "HX-Reswap"
	HeaderHXRetarget   = "HX-Retarget"
	HeaderHXTrigger    = "HX-Trigger"
)

// Request headers.
const (
	HeaderHXRequest    = "HX-Request"
	HeaderHXBoosted    = "HX-Boosted"
	HeaderHXCurrentURL = "HX-Current-URL"
	HeaderHXTarget     = "HX-Target"
)
