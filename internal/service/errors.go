package service

import (
	"context"
	"errors"
)

// Typed failures for every expected condition. Handlers map these onto HTTP
// statuses; anything else is treated as an unexpected storage fault.
var (
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
	ErrNotAMember           = errors.New("not a member of this conversation")
	ErrEmptyBody            = errors.New("body must not be empty")
	ErrInvalidCursor        = errors.New("invalid cursor")
	ErrSeqBeyondMax         = errors.New("seq is beyond the latest message")
	ErrTooFewMembers        = errors.New("conversation requires at least two members")
	ErrTooManyMembers       = errors.New("conversation exceeds the member limit")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)

// wrapStorage surfaces storage timeouts as ErrStorageUnavailable so callers
// get a typed failure instead of a hung request.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStorageUnavailable
	}
	return err
}
