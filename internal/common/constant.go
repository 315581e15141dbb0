package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL uint64 = 1_000_000_000

// LoginChallengePrefix prefixes the message a wallet signs to log in.
const LoginChallengePrefix = "lamportvault-login:"

// RequestIDHeaderName is the optional gRPC metadata key a caller can use to
// correlate its request with node logs.
const RequestIDHeaderName = "x-request-id"
