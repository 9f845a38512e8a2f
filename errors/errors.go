package errors

import "fmt"

var (
	ErrRecipientNotFound = fmt.Errorf("no user carries this id")
	ErrSelfConnection    = fmt.Errorf("cannot open a conversation with yourself")
	ErrQuotaExceeded     = fmt.Errorf("guest conversation quota reached")
	ErrIdentityExhausted = fmt.Errorf("could not mint a free short id")
	ErrPermissionDenied  = fmt.Errorf("store denied access")
	ErrOffline           = fmt.Errorf("client is offline")
	ErrNotFound          = fmt.Errorf("document not found")
	ErrPartialFailure    = fmt.Errorf("a later step failed after an earlier one committed")
	ErrEmptyMessage      = fmt.Errorf("message text is empty")
	ErrInvalidGroup      = fmt.Errorf("group name or member list is invalid")
	ErrInvalidShortID    = fmt.Errorf("short id must be 6 characters of A-Z or 0-9")
	ErrNoConversation    = fmt.Errorf("no conversation is selected")
)
