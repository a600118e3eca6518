package domain

import "time"

// User is the collaborator-owned directory row. The core only reads the
// display fields; credential and profile management live elsewhere.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:text;uniqueIndex:idx_users_username;not null" json:"username"`
	Avatar    *string   `gorm:"type:text" json:"avatar,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Profile is the minimal projection handed out by the identity directory.
type Profile struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
