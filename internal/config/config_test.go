package config_test

import (
	"context"
	"testing"

	"github.com/brahmiamine/ArbiNote-sub000/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a fresh configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("Then it carries sensible defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.StoreBackend, ShouldEqual, "memory")
			So(cfg.MongoDatabase, ShouldEqual, "arbinote")
			So(cfg.GuardSize, ShouldEqual, 100_000)
			So(cfg.CriteriaFile, ShouldBeEmpty)
			So(cfg.MaxTopMatches, ShouldEqual, 50)
			So(cfg.VoteRateLimitRPS, ShouldEqual, 50)
			So(cfg.VoteRateLimitBurst, ShouldEqual, 100)
		})
	})
}
