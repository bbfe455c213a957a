package pdfview

// Source describes where PDF content comes from. Either URI or Base64 (or
// both) may be set; the delivery strategy picks which one is used.
//
// A Source is immutable from the library's point of view: it is copied on
// every call that accepts one.
type Source struct {
	// URI is a remote http(s) URL, a file:// path, or a content:// locator.
	URI string

	// Headers are sent with HTTP requests for URI-based delivery.
	Headers map[string]string

	// Base64 is an inline payload carrying the
	// "data:application/pdf;base64," prefix.
	Base64 string
}

func (s Source) hasURI() bool    { return s.URI != "" }
func (s Source) hasBase64() bool { return s.Base64 != "" }

// equal reports whether two sources would resolve and stage identically.
// Headers are intentionally ignored: a header-only change does not require
// re-staging, it takes effect on the next delivery as-is.
func (s Source) equal(o Source) bool {
	return s.URI == o.URI && s.Base64 == o.Base64
}
