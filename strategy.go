package pdfview

// Platform identifies the host operating system the viewer runs on. The two
// platforms differ in how their native web surface prefers to receive PDF
// content: Android handles direct paths, iOS handles inline data.
type Platform int

const (
	// Android prefers direct paths: remote URLs and staged local files.
	Android Platform = iota
	// IOS prefers inline data: base64 payloads embedded in a viewer page.
	IOS
)

// String returns the lowercase platform name.
func (p Platform) String() string {
	switch p {
	case Android:
		return "android"
	case IOS:
		return "ios"
	}
	return "unknown"
}

// Strategy is the method used to deliver PDF content to the embedded viewer.
// Exactly one strategy is active per source; strategies are never mixed
// mid-flight.
type Strategy int

const (
	// StrategyUnknown means no strategy matched the source. It produces no
	// locator and is reported as a validation error.
	StrategyUnknown Strategy = iota

	// DirectURL hands the source URI (plus headers) straight to the viewer.
	DirectURL

	// DirectBase64 embeds the inline payload in a generated viewer page.
	DirectBase64

	// Base64ToLocalPDF decodes the inline payload to a staged local PDF file.
	Base64ToLocalPDF

	// URLToBase64 fetches the remote document, converts it to a base64 data
	// URI, and embeds it in a generated viewer page.
	URLToBase64

	// GoogleReader wraps the source URI in the Google Docs viewer.
	GoogleReader
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case DirectURL:
		return "direct-url"
	case DirectBase64:
		return "direct-base64"
	case Base64ToLocalPDF:
		return "base64-to-local-pdf"
	case URLToBase64:
		return "url-to-base64"
	case GoogleReader:
		return "google-reader"
	}
	return "unknown"
}

// stagesArtifacts reports whether the strategy writes files into the cache
// directory. DirectURL and GoogleReader never touch the filesystem.
func (s Strategy) stagesArtifacts() bool {
	switch s {
	case DirectBase64, Base64ToLocalPDF, URLToBase64:
		return true
	}
	return false
}

// ResolveStrategy picks the delivery strategy for src. It is a pure function
// of its inputs: the same platform, source, and reader flag always yield the
// same strategy.
//
// The explicit reader flag wins over everything. Android prefers direct
// paths, so a URI beats an inline payload there; iOS prefers inline data, so
// the preference is reversed. A source with neither field set resolves to
// [StrategyUnknown].
func ResolveStrategy(platform Platform, src Source, useGoogleReader bool) Strategy {
	if useGoogleReader {
		return GoogleReader
	}
	switch platform {
	case Android:
		if src.hasURI() {
			return DirectURL
		}
		if src.hasBase64() {
			return Base64ToLocalPDF
		}
	default:
		if src.hasBase64() {
			return DirectBase64
		}
		if src.hasURI() {
			return URLToBase64
		}
	}
	return StrategyUnknown
}
