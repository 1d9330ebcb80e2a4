package model

// Session is the token pair handed to a client after registration, login
// or refresh. User is empty on refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}
