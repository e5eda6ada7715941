package util

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func NormalizePhone(p string) string {
	// keep it simple for MVP
	// TODO -  may use libphonenumber
	return strings.ReplaceAll(strings.TrimSpace(p), " ", "")
}

func NewCampaignID() string {
	// ULID is sortable (nice for logs and dashboards)
	t := time.Now().UTC()
	return "cmp_" + ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// FormatAmount renders an owed amount as a plain decimal string, the
// shape interpolated into message bodies: 1250 -> "1250", 890.5 -> "890.5".
func FormatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func NowUTC() time.Time {
	return time.Now().UTC()
}
