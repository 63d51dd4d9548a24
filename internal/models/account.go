package models

import (
	"firebase.google.com/go/v4/auth"
)

// Profile is the user-editable half of an Account, stored in the "profiles"
// collection keyed by the Firebase Auth uid. The store strips UID and
// Password before writing; UID is restored from the document id on read.
type Profile struct {
	UID       string `json:"uid"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Credentials pairs the Firebase Auth user record with the plaintext
// password supplied at signup. The password only exists in flight; it is
// handed to Firebase Auth and never persisted.
type Credentials struct {
	User     *auth.UserRecord `json:"user"`
	Password string           `json:"password,omitempty"`
}

// Account is the composite view of a user: auth record plus profile
// document. It is never stored as a unit.
type Account struct {
	Credentials Credentials `json:"credentials"`
	Profile     Profile     `json:"profile"`
}

// CustomClaims mirrors the custom attributes attached to a Firebase ID
// token and consulted by the authorization guard.
type CustomClaims struct {
	Role        string `json:"role"`
	AccessLevel *int   `json:"accessLevel,omitempty"`
}

// Map renders the claims in the shape SetCustomUserClaims expects.
func (c CustomClaims) Map() map[string]any {
	m := map[string]any{"role": c.Role}
	if c.AccessLevel != nil {
		m["accessLevel"] = *c.AccessLevel
	}
	return m
}
