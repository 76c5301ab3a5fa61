package constants

import "time"

const (
	UsernameMinLength = 1
	UsernameMaxLength = 64
	OpenIDMaxLength   = 128
	RoomNameMaxLength = 64
	NoteMaxLength     = 255

	RoomCodeLength = 6
	// Codes are drawn from [RoomCodeMin, RoomCodeMax]; the range below
	// 100000 is reserved so every code is exactly six digits.
	RoomCodeMin = 100000
	RoomCodeMax = 999999

	RoomCodeMaxAttempts = 5

	// TransferCeilingMinor caps a single transfer at 9999.00, in minor units.
	TransferCeilingMinor = 999900

	DefaultTransferPageSize = 50
	MaxTransferPageSize     = 200

	JWTSecretMinLength    = 32
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second
	DefaultTokenTTL       = 30 * 24 * time.Hour

	RateLimitCleanupInterval   = time.Minute
	RateLimitRequestsPerSecond = 20.0
	RateLimitBurst             = 40

	FeedSendBufferSize = 64
	FeedWriteWait      = 10 * time.Second
	FeedPongWait       = 60 * time.Second
	FeedPingPeriod     = 54 * time.Second
	FeedMaxMessageSize = 4 * 1024
)

type ContextKey string

const TraceIDKey ContextKey = "trace_id"
