// Package pagination implements the opaque cursor tokens used by list
// endpoints. A token pins the (journal_date, created_at) position of the last
// row on a page; the next query resumes strictly after that position, so
// pages stay stable while new journals are posted.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// cursorTimeFormat keeps full nanosecond precision so created_at tie-breaks
// survive the round trip.
const cursorTimeFormat = time.RFC3339Nano

// ErrMalformedToken is returned when a token cannot be decoded. Callers map
// it to a 400 rather than retrying.
var ErrMalformedToken = errors.New("malformed pagination token")

// EncodeToken packs a journal cursor position into an opaque string.
func EncodeToken(journalDate time.Time, createdAt time.Time) string {
	cursor := journalDate.Format(cursorTimeFormat) + "|" + createdAt.Format(cursorTimeFormat)
	return base64.URLEncoding.EncodeToString([]byte(cursor))
}

// DecodeToken unpacks a token produced by EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrMalformedToken, "not base64")
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrMalformedToken, "missing cursor separator")
	}

	journalDate, err := time.Parse(cursorTimeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrMalformedToken, "bad journal date")
	}

	createdAt, err := time.Parse(cursorTimeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrMalformedToken, "bad created_at")
	}

	return journalDate, createdAt, nil
}
