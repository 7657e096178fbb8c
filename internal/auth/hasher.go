package auth

// PasswordHasher defines how account passwords are stored and checked.
type PasswordHasher interface {
	// Hash returns the stored form of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored form. needsRehash is
	// true when the match succeeded against a scheme or cost that should be
	// replaced by a fresh Hash.
	Verify(password, stored string) (ok bool, needsRehash bool)
}
