package auth

// Claims carries the identity extracted from a verified token.
type Claims struct {
	UserID     string
	Email      string
	PracticeID string
}
