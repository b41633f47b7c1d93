package model

import "time"

// TokenBlacklist holds HMAC(token) of revoked access tokens until they expire.
type TokenBlacklist struct {
	TokenBlacklistID        uint      `gorm:"column:token_blacklist_id;primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"column:token_blacklist_token;type:varchar(64);not null;uniqueIndex" json:"-"`
	TokenBlacklistExpiredAt time.Time `gorm:"column:token_blacklist_expired_at;not null;index" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
