package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/http/api"
	app "github.com/brahmiamine/ArbiNote-sub000/internal/app"
	"github.com/brahmiamine/ArbiNote-sub000/internal/config"
	"github.com/brahmiamine/ArbiNote-sub000/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigurationLoading(t *testing.T) {
	t.Setenv("ARBINOTE_ADDR", ":8080")
	t.Setenv("ARBINOTE_GUARD_SIZE", "1000")
	t.Setenv("ARBINOTE_MAX_TOP_MATCHES", "25")

	convey.Convey("Given environment overrides", t, func() {
		convey.Convey("Then configuration should be loadable", func() {
			ctx := context.Background()
			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.GuardSize, convey.ShouldEqual, 1000)
			convey.So(cfg.MaxTopMatches, convey.ShouldEqual, 25)
		})
	})
}

func TestServiceWiring(t *testing.T) {
	convey.Convey("Given the main application wiring", t, func() {
		convey.Convey("When creating the service", func() {
			convey.So(app.New(), convey.ShouldNotBeNil)
			convey.So(app.New(
				app.WithGuardSize(2000),
				app.WithMaxTopMatches(25),
			), convey.ShouldNotBeNil)
		})

		convey.Convey("When registering the HTTP routes", func() {
			convey.So(logger.Init(), convey.ShouldBeNil)

			svc := app.New(app.WithLogger(logger.Get()))
			ctx := context.Background()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			server := api.NewServer(svc, svc, api.WithVoteRateLimit(50, 100))
			convey.So(server, convey.ShouldNotBeNil)
			convey.So(func() { server.Register(ctx, mux) }, convey.ShouldNotPanic)

			srv := &http.Server{
				Addr:              ":0",
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			convey.So(srv, convey.ShouldNotBeNil)
		})
	})
}
