package models

// Blacklist stores revoked access tokens until they expire.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"index"`
}
