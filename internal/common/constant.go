package common

// AuthHeaderName is the HTTP header used to carry the auth token on
// outbound requests.
const AuthHeaderName = "Authorization"

// AuthScheme is the token scheme expected by the backend, e.g.
// "Authorization: Token <value>".
const AuthScheme = "Token"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-Id"
