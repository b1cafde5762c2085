// Package qr builds image URLs for the external QR-code render service.
package qr

import (
	"fmt"
	"net/url"
	"strings"
)

const endpoint = "https://api.qrserver.com/v1/create-qr-code/"

// ImageURL returns a render-service URL for a QR code of the given
// pixel size encoding data, colored with the page theme (hex colors,
// leading # optional).
func ImageURL(size int, data, fgHex, bgHex string) string {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	if fg := strings.TrimPrefix(fgHex, "#"); fg != "" {
		q.Set("color", fg)
	}
	if bg := strings.TrimPrefix(bgHex, "#"); bg != "" {
		q.Set("bgcolor", bg)
	}
	return endpoint + "?" + q.Encode()
}
