package domain

import (
	"strings"
	"time"
)

// Chat is a direct conversation between exactly two users.
//
// UserIDs is immutable after creation and always holds two distinct ids.
// PairKey is the sorted "<low>:<high>" form of the pair and carries the unique
// index that makes get-or-create safe under concurrent callers.
// SeenBy tracks which participants have viewed the chat since its last message.
type Chat struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	PairKey     string    `gorm:"type:text;not null;uniqueIndex:idx_chats_pair_key" json:"-"`
	UserIDs     []string  `gorm:"type:jsonb;serializer:json;not null" json:"user_ids"`
	SeenBy      []string  `gorm:"type:jsonb;serializer:json;not null" json:"seen_by"`
	LastMessage *string   `gorm:"type:text" json:"last_message,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Messages []Message `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// Message rows carry a storage-assigned Seq that breaks ties between messages
// sharing a created_at timestamp, keeping per-chat order stable.
type Message struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex:idx_messages_seq" json:"-"`
	ChatID    string    `gorm:"type:uuid;not null;index:idx_messages_chat" json:"chat_id"`
	SenderID  string    `gorm:"type:uuid;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PairKey returns the canonical key for an unordered user pair.
func PairKey(userID, otherID string) string {
	if strings.Compare(userID, otherID) > 0 {
		userID, otherID = otherID, userID
	}
	return userID + ":" + otherID
}

// HasParticipant reports whether userID is one of the chat's two participants.
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, if any.
func (c *Chat) OtherParticipant(userID string) (string, bool) {
	for _, id := range c.UserIDs {
		if id != userID {
			return id, true
		}
	}
	return "", false
}

// SeenByUser reports whether userID has seen the chat's latest state.
func (c *Chat) SeenByUser(userID string) bool {
	for _, id := range c.SeenBy {
		if id == userID {
			return true
		}
	}
	return false
}
