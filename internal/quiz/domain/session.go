package domain

// Session ties a transport connection to a logged-in user. Sessions live
// only in process memory; a restart drops them all.
type Session struct {
	ConnectionID string
	Username     string
}
