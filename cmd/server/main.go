package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitroom/backend/internal/api"
	"github.com/splitroom/backend/internal/common/clock"
	"github.com/splitroom/backend/internal/common/config"
	"github.com/splitroom/backend/internal/common/constants"
	commoncrypto "github.com/splitroom/backend/internal/common/crypto"
	"github.com/splitroom/backend/internal/common/db"
	commonhttp "github.com/splitroom/backend/internal/common/http"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/common/server"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	membershipsvc "github.com/splitroom/backend/internal/membership/service"
	roomrepo "github.com/splitroom/backend/internal/room/repository"
	roomsvc "github.com/splitroom/backend/internal/room/service"
	"github.com/splitroom/backend/internal/roomfeed"
	statsrepo "github.com/splitroom/backend/internal/stats/repository"
	statssvc "github.com/splitroom/backend/internal/stats/service"
	transferrepo "github.com/splitroom/backend/internal/transfer/repository"
	transfersvc "github.com/splitroom/backend/internal/transfer/service"
	userrepo "github.com/splitroom/backend/internal/user/repository"
	usersvc "github.com/splitroom/backend/internal/user/service"
)

const serviceName = "splitroom"

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	txm := db.NewPgTxManager(pool)
	ids := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()

	hub := roomfeed.NewHub(log)

	users := usersvc.NewUserService(
		userrepo.NewPgRepository(pool),
		ids,
		usersvc.NewTokenIssuer(cfg.JWTSecret, ids, cfg.TokenTTL, clk),
		log,
	)
	rooms := roomsvc.NewRoomService(
		roomrepo.NewPgRepository(pool),
		roomsvc.NewRandomCodeGenerator(),
		cfg.RoomCodeAttempts,
		log,
	)
	memberRepo := membershiprepo.NewPgRepository(pool)
	members := membershipsvc.NewMembershipService(memberRepo, hub, log)
	transfers := transfersvc.NewTransferService(
		transferrepo.NewPgRepository(pool),
		memberRepo,
		txm,
		hub,
		cfg.TransferCeilingMinor,
		log,
	)
	stats := statssvc.NewStatsService(statsrepo.NewPgRepository(pool), log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	api.New(users, rooms, members, transfers, stats, hub, cfg.JWTSecret, log).Register(mux)

	limiter := commonhttp.NewRateLimiter(
		constants.RateLimitRequestsPerSecond,
		constants.RateLimitBurst,
	)
	handler := commonhttp.BuildBaseHandler(log, limiter.Middleware("/health", "/metrics")(mux))

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)
	server.StartWithGracefulShutdown(srv, log, serviceName, []server.ShutdownHook{
		func(ctx context.Context) error {
			hub.Shutdown()
			return nil
		},
	})
}
