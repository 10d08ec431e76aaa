package share

// Method is the delivery mechanism the resolver selects for a share attempt.
type Method uint8

const (
	MethodNotSupported Method = iota
	MethodNativeIntent
	MethodVendorSdk
	MethodWebFallback
)

func (m Method) String() string {
	switch m {
	case MethodNativeIntent:
		return "native-intent"
	case MethodVendorSdk:
		return "vendor-sdk"
	case MethodWebFallback:
		return "web-fallback"
	default:
		return "not-supported"
	}
}

// resolveRule is one row of the resolution policy. Rules are evaluated top
// to bottom; the first rule that applies decides the method. All platform
// specifics live in the capability descriptor, keeping the rules themselves
// platform-agnostic.
type resolveRule struct {
	name    string
	applies func(caps *Capabilities, avail Availability, post Post) bool
	method  func(caps *Capabilities, avail Availability, post Post) Method
}

var resolveRules = []resolveRule{
	{
		// The generic share surface never needs an SDK or a browser.
		name: "generic native target",
		applies: func(caps *Capabilities, _ Availability, _ Post) bool {
			return caps.Platform == PlatformNative
		},
		method: func(*Capabilities, Availability, Post) Method { return MethodNativeIntent },
	},
	{
		// Platforms that always hand off to their own editor get the SDK
		// unconditionally. When the app is missing the dispatcher reports
		// PlatformNotInstalled; a web fallback is never substituted here.
		name: "editor hand-off",
		applies: func(caps *Capabilities, _ Availability, _ Post) bool {
			return caps.RequiresUserEdit
		},
		method: func(*Capabilities, Availability, Post) Method { return MethodVendorSdk },
	},
	{
		name: "web fallback for missing app",
		applies: func(caps *Capabilities, avail Availability, _ Post) bool {
			return !avail.Installed && caps.HasWebFallback
		},
		method: func(*Capabilities, Availability, Post) Method { return MethodWebFallback },
	},
	{
		name: "installed, shape-dependent",
		applies: func(_ *Capabilities, avail Availability, _ Post) bool {
			return avail.Installed
		},
		method: func(caps *Capabilities, _ Availability, post Post) Method {
			if caps.IntentCompatible == nil || caps.IntentCompatible(post) {
				return MethodNativeIntent
			}
			if caps.RequiresSdk {
				return MethodVendorSdk
			}
			return MethodNativeIntent
		},
	},
}

// Resolve selects exactly one delivery method for the post, or
// MethodNotSupported when the platform is neither installed nor reachable
// another way. It never returns an ambiguous state.
func Resolve(caps *Capabilities, avail Availability, post Post) Method {
	for _, rule := range resolveRules {
		if rule.applies(caps, avail, post) {
			return rule.method(caps, avail, post)
		}
	}
	return MethodNotSupported
}
