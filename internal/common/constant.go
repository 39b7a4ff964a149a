package common

const (
	// AuthorizationHeaderName carries the bearer token on inbound HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the auth scheme announced in WWW-Authenticate challenges
	// and expected as the Authorization header prefix.
	BearerScheme = "Bearer"

	// TokenType is reported to clients next to every issued access token.
	TokenType = "bearer"
)
