package common

// AccessTokenHeaderName is the gRPC metadata key carrying the caller's
// signed identity token.
const AccessTokenHeaderName = "access_token"
