package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReceiptNumber returns a receipt number such as INV-20240309-3F9A1C2B: the
// prefix, the sale date and eight random hex digits.
func ReceiptNumber(prefix string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + "-" + at.Format("20060102") + "-" + suffix
}
