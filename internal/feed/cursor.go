package feed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano // Use nano for precision

// Cursor marks a position in the feed's total order: the (createdAt, id) pair
// of the last entry on the previous page. It is pure data with no server-side
// state, so it survives across stateless requests.
//
// A cursor is only meaningful against the feed's single public query shape;
// other listings (e.g. admin pagination) use their own scheme and must never
// accept one of these tokens.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

type cursorPayload struct {
	CreatedAt string `json:"createdAt"`
	ID        string `json:"id"`
}

// EncodeCursor creates an opaque cursor string from a feed position.
//
// The token uses the standard base64 alphabet, which includes '+' and '/',
// so it is only safe in a query string once percent-encoded. Clients built
// on url.Values get that for free; hand-assembled URLs must escape it.
func EncodeCursor(c Cursor) string {
	payload := cursorPayload{
		CreatedAt: c.CreatedAt.UTC().Format(timeFormat),
		ID:        c.ID,
	}
	data, _ := json.Marshal(payload)
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor parses the opaque cursor string back into a feed position.
// Anything that does not losslessly round-trip is rejected.
func DecodeCursor(encoded string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	var payload cursorPayload
	if err := json.Unmarshal(decodedBytes, &payload); err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor format: %w", err)
	}
	if payload.CreatedAt == "" || payload.ID == "" {
		return Cursor{}, fmt.Errorf("invalid cursor format: missing createdAt or id")
	}

	ts, err := time.Parse(timeFormat, payload.CreatedAt)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid timestamp in cursor: %w", err)
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid id in cursor: %w", err)
	}

	return Cursor{CreatedAt: ts.UTC(), ID: id.String()}, nil
}
