package constants

const (
	HeaderRequestIDKey  = "X-Request-ID"
	HeaderUserIDKey     = "X-User-ID"
	HeaderLoginTokenKey = "X-Arena-JWT-Token"
)

const GatewayServiceName = "CodeArena-Controller"

const (
	ContextUserClaimsKey = "X-Arena-User-Claims"
)
