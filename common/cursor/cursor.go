package cursor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned when a cursor token cannot be decoded.
var ErrInvalid = errors.New("invalid cursor")

// Key identifies a position in a listing ordered by (created_at DESC, id DESC).
// Keyset pagination on (created_at, id) keeps already-returned pages stable
// while new rows are inserted concurrently.
type Key struct {
	CreatedAt time.Time
	ID        int64
}

// Encode returns an opaque token for the position after k.
func Encode(k Key) string {
	raw := fmt.Sprintf("%d:%d", k.CreatedAt.UnixMicro(), k.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode.
func Decode(token string) (Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Key{}, ErrInvalid
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return Key{}, ErrInvalid
	}

	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Key{}, ErrInvalid
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Key{}, ErrInvalid
	}

	return Key{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

// EncodeSeq returns an opaque token for a per-conversation sequence position.
func EncodeSeq(seq int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(seq, 10)))
}

// DecodeSeq parses a token produced by EncodeSeq.
func DecodeSeq(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalid
	}
	seq, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return seq, nil
}
