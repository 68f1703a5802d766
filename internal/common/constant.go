// Package common contains shared constants and sentinel errors used across
// leavedesk components.
package common

// Storage keys for the persisted credential pair. Logout clears the whole
// session namespace, so no unrelated state may be stored under these keys.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)
