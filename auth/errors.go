package auth

import "errors"

var (
	// ErrEmailTaken is returned when signup hits the unique email
	// constraint.
	ErrEmailTaken = errors.New("an account with that email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
