package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brahmiamine/ArbiNote-sub000/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(ctx)

		Convey("Then defaults are returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.StoreBackend, ShouldEqual, "memory")
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	ctx := context.Background()

	t.Setenv("ARBINOTE_ADDR", ":7070")
	t.Setenv("ARBINOTE_GUARD_SIZE", "256")
	t.Setenv("ARBINOTE_LOG_LEVEL", "debug")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(ctx)

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.GuardSize, ShouldEqual, 256)
			So(cfg.LogLevel, ShouldEqual, "debug")

			Convey("And untouched fields keep defaults", func() {
				So(cfg.MaxTopMatches, ShouldEqual, 50)
			})
		})
	})
}

func TestLoadFileLayering(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("addr: \":6060\"\nlog_level: warn\nmax_top_matches: 10\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("ARBINOTE_CONFIG", path)
	t.Setenv("ARBINOTE_ADDR", ":5050")

	Convey("Given a config file and an env override", t, func() {
		cfg, err := config.Load(ctx)

		Convey("Then env beats file, and file beats defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
			So(cfg.LogLevel, ShouldEqual, "warn")
			So(cfg.MaxTopMatches, ShouldEqual, 10)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unknown store backend", t, func() {
		t.Setenv("ARBINOTE_STORE_BACKEND", "cassandra")

		_, err := config.Load(ctx)

		Convey("Then loading fails with an invalid config error", func() {
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})

	Convey("Given a mongo backend without a URI", t, func() {
		t.Setenv("ARBINOTE_STORE_BACKEND", "mongo")

		_, err := config.Load(ctx)

		Convey("Then loading fails with an invalid config error", func() {
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("ARBINOTE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := config.Load(ctx)

		Convey("Then loading fails with a load error", func() {
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}
