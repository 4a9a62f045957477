// Package carrier maps carrier ids to their outbound destinations.
package carrier

import "github.com/sendurway/signalwise/internal/domain"

// DefaultFallbackURL is where unknown carrier ids are sent.
const DefaultFallbackURL = "https://www.google.com"

// DefaultURLs are the built-in outbound destinations.
var DefaultURLs = map[domain.Carrier]string{
	domain.CarrierMint:     "https://www.mintmobile.com",
	domain.CarrierVisible:  "https://www.visible.com",
	domain.CarrierUSMobile: "https://www.usmobile.com",
}

// Directory resolves carrier ids to outbound URLs. It is immutable after
// construction and safe for concurrent use.
type Directory struct {
	urls     map[domain.Carrier]string
	fallback string
}

// NewDirectory builds a directory from the defaults, replacing any entry that
// has a non-empty override. An empty fallback keeps DefaultFallbackURL.
func NewDirectory(overrides map[domain.Carrier]string, fallback string) *Directory {
	urls := make(map[domain.Carrier]string, len(DefaultURLs))
	for c, u := range DefaultURLs {
		urls[c] = u
	}
	for c, u := range overrides {
		if _, known := urls[c]; known && u != "" {
			urls[c] = u
		}
	}

	if fallback == "" {
		fallback = DefaultFallbackURL
	}

	return &Directory{urls: urls, fallback: fallback}
}

// Resolve returns the destination for a raw carrier id. Unknown or malformed
// ids resolve to the fallback with known=false; this never fails.
func (d *Directory) Resolve(raw string) (target string, known bool) {
	c, ok := domain.ParseCarrier(raw)
	if !ok {
		return d.fallback, false
	}
	return d.urls[c], true
}

// URL returns the destination for a known carrier.
func (d *Directory) URL(c domain.Carrier) string {
	if u, ok := d.urls[c]; ok {
		return u
	}
	return d.fallback
}

// Fallback returns the safe default destination.
func (d *Directory) Fallback() string {
	return d.fallback
}
