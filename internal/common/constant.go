package common

// Roles recognized by the access guard. The set is open: the store may hold
// other labels, but these are the ones the service itself assigns and checks.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"
