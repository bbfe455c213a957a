package pdfview

import (
	"fmt"
	"strings"
)

// pdfDataPrefix is the data-URI prefix every inline payload must carry.
const pdfDataPrefix = "data:application/pdf;base64,"

// acceptedSchemes are the URI schemes URL-based strategies accept.
var acceptedSchemes = []string{"http://", "https://", "file://", "content://"}

// validateSource checks that the fields the resolved strategy depends on are
// present and well formed. It returns nil when the source can be staged.
func validateSource(strategy Strategy, src Source) error {
	switch strategy {
	case DirectURL, URLToBase64, GoogleReader:
		for _, scheme := range acceptedSchemes {
			if strings.HasPrefix(src.URI, scheme) {
				return nil
			}
		}
		return fmt.Errorf("pdfview: %s requires a uri with scheme %s, got %q",
			strategy, strings.Join(acceptedSchemes, ", "), src.URI)
	case DirectBase64, Base64ToLocalPDF:
		if !strings.HasPrefix(src.Base64, pdfDataPrefix) {
			return fmt.Errorf("pdfview: %s requires a base64 payload with the %q prefix",
				strategy, pdfDataPrefix)
		}
		return nil
	}
	return ErrUnknownStrategy
}
