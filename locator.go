package pdfview

import (
	"net/url"
	"path/filepath"
	"strings"
)

// googleViewerURL wraps a remote document URI in the Google Docs viewer.
const googleViewerURL = "https://docs.google.com/viewer?embedded=true&url="

// blankPage primes iOS surfaces before they receive their real source.
const blankPage = "about:blank"

// Locator is the resolved address handed to the embedded viewer: a remote
// URL, a staged local file, or a wrapping third-party viewer URL.
type Locator struct {
	URI     string
	Headers map[string]string
}

// IsFile reports whether the locator points at a staged local file.
func (l Locator) IsFile() bool { return strings.HasPrefix(l.URI, "file://") }

func (l Locator) String() string { return l.URI }

// buildLocator maps the resolved strategy and staged artifacts to the final
// viewer address. [StrategyUnknown] yields no locator.
func buildLocator(strategy Strategy, src Source, st *stager) (Locator, error) {
	switch strategy {
	case GoogleReader:
		return Locator{URI: googleViewerURL + url.QueryEscape(src.URI)}, nil
	case DirectBase64, URLToBase64:
		return Locator{URI: fileURI(st.htmlPath())}, nil
	case DirectURL:
		return Locator{URI: src.URI, Headers: src.Headers}, nil
	case Base64ToLocalPDF:
		return Locator{URI: fileURI(st.pdfPath())}, nil
	}
	return Locator{}, ErrUnknownStrategy
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + abs
}
