package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "amanah_backend/internals/features/users/auth/model"
)

/*
   =========================================================
   Token blacklist. Only HMAC(token) is stored, never the raw JWT.
   =========================================================
*/

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Blacklist stores the token until expiresAt. Re-adding refreshes the expiry.
func Blacklist(ctx context.Context, db *gorm.DB, rawToken, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		TokenBlacklistToken:     hmacHex(rawToken, secret),
		TokenBlacklistExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_blacklist_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_blacklist_expired_at"}),
		}).
		Create(&row).Error
}

// IsBlacklisted: an unexpired row exists for this token.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawToken, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawToken) == "" || strings.TrimSpace(secret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token_blacklist_token = ? AND token_blacklist_expired_at > ?", hmacHex(rawToken, secret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired hard-deletes rows whose expiry has passed.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("token_blacklist_expired_at <= ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
