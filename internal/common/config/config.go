package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/splitroom/backend/internal/common/constants"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	// RoomCodeAttempts bounds the regenerate-and-retry loop on code
	// collision before the request fails with a conflict.
	RoomCodeAttempts int

	// TransferCeilingMinor is the largest single transfer, in minor units.
	TransferCeilingMinor int64
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return Config{}, commonerrors.ErrInvalidJWTSecret
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:             getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:          databaseURL,
		JWTSecret:            jwtSecret,
		TokenTTL:             getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout:       getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		RoomCodeAttempts:     getIntEnv("ROOM_CODE_ATTEMPTS", constants.RoomCodeMaxAttempts),
		TransferCeilingMinor: getInt64Env("TRANSFER_CEILING_MINOR", constants.TransferCeilingMinor),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getInt64Env(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}
