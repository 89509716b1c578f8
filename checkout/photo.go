package checkout

import (
	"fmt"
	"strings"
	"time"
)

const photoBucket = "hss-storage-item-photos"

// PhotoKey derives the opaque object reference recorded for an uploaded
// item photo. No upload happens in the demo; the key alone is stored.
func PhotoKey(fileName string) string {
	return fmt.Sprintf("s3://%s/orders/%d-%s", photoBucket, time.Now().UnixMilli(), sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
