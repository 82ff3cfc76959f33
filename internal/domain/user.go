package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// User is an identity reference. Two users are the same identity when their
// IDs match; email and address are descriptive attributes only.
type User struct {
	ID        uuid.UUID
	Email     string
	Address   *Address
	CreatedAt time.Time
}

// Address is a value object owned by a User.
type Address struct {
	Street  string
	City    string
	Country string
}

// Key returns the identity used for equality, hashing and membership checks.
func (u User) Key() uuid.UUID {
	return u.ID
}

// SameAs reports whether u and other refer to the same identity.
func (u User) SameAs(other User) bool {
	return u.ID == other.ID
}

// UniqueUsers drops repeated identities, keeping the first occurrence.
func UniqueUsers(users []User) []User {
	return lo.UniqBy(users, User.Key)
}

// UserIDs returns the identities of users in order.
func UserIDs(users []User) []uuid.UUID {
	return lo.Map(users, func(u User, _ int) uuid.UUID { return u.ID })
}
