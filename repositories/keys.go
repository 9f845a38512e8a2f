package repositories

import (
	"errors"
	"strings"

	apperrors "whispr/errors"

	"github.com/dgraph-io/badger/v4"
)

// Collection key layout. Message keys embed the RFC3339Nano timestamp so
// an ascending prefix scan returns chronological order for free; the
// trailing uuid disconnects collisions when two messages share an instant.
//
//	user:{uid}                               user document
//	shortid:{SHORTID}                        equality-lookup index -> uid
//	chat:{a_b}                               conversation summary
//	chatmsg:{a_b}:{timestamp}:{uuid}         direct message
//	group:{groupID}                          group document
//	groupmsg:{groupID}:{timestamp}:{uuid}    group message
const (
	userKeyPrefix     = "user:"
	shortIDKeyPrefix  = "shortid:"
	chatKeyPrefix     = "chat:"
	chatMsgKeyPrefix  = "chatmsg:"
	groupKeyPrefix    = "group:"
	groupMsgKeyPrefix = "groupmsg:"

	// Throwaway handshake keys written while a watch attaches; deleted
	// as soon as the subscription echoes them back. Never a document.
	barrierKeyPrefix = "barrier:"
)

func userKey(uid string) []byte            { return []byte(userKeyPrefix + uid) }
func shortIDKey(shortID string) []byte     { return []byte(shortIDKeyPrefix + shortID) }
func chatKey(conversationID string) []byte { return []byte(chatKeyPrefix + conversationID) }
func groupKey(groupID string) []byte       { return []byte(groupKeyPrefix + groupID) }
func barrierKey(id string) []byte          { return []byte(barrierKeyPrefix + id) }

func chatMsgPrefix(conversationID string) []byte {
	return []byte(chatMsgKeyPrefix + conversationID + ":")
}

func groupMsgPrefix(groupID string) []byte {
	return []byte(groupMsgKeyPrefix + groupID + ":")
}

// messageID recovers the uuid segment from a message key. The timestamp
// itself contains colons, so only the part after the last one is the id.
func messageID(key []byte) string {
	s := string(key)
	return s[strings.LastIndexByte(s, ':')+1:]
}

// translate maps store-level failures into the engine's error taxonomy at
// the read/write boundary.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
