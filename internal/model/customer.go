package model

import "time"

// Customer represents a customer account as stored in the `customers`
// table. Login is refused while EmailVerified is false; the verification
// token itself is never stored in plain form, only its SHA-256 hash.
//
// Fields:
//  ID              – uuid primary key.
//  FirstName       – given name.
//  LastName        – family name.
//  Address         – free-text postal address.
//  Email           – unique email address, normalized to lower case.
//  Phone           – contact phone number.
//  PasswordHash    – bcrypt hashed password.
//  EmailVerified   – whether the verification link has been followed.
//  VerifyTokenHash – SHA-256 hex digest of the outstanding verification token (nullable).
//  VerifyExpiresAt – when the outstanding verification token expires (nullable).
//  CreatedAt       – timestamp of registration.
type Customer struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstname"`
	LastName        string     `json:"lastname"`
	Address         string     `json:"address"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	PasswordHash    string     `json:"-"`
	EmailVerified   bool       `json:"email_verified"`
	VerifyTokenHash *string    `json:"-"`
	VerifyExpiresAt *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}
