package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/prode/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DBPath, ShouldBeEmpty)
			So(cfg.PointsPerHit, ShouldEqual, 3)
			So(cfg.WorstAvgError, ShouldEqual, 999.0)
			So(cfg.WorstMissLimit, ShouldEqual, 50)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRODE_ADDR", ":7070")
	t.Setenv("PRODE_DB_PATH", "/tmp/pool.db")
	t.Setenv("PRODE_POINTS_PER_HIT", "5")

	Convey("Given PRODE_ environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env beats the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.DBPath, ShouldEqual, "/tmp/pool.db")
			So(cfg.PointsPerHit, ShouldEqual, 5)
			// Untouched keys keep their defaults.
			So(cfg.WorstMissLimit, ShouldEqual, 50)
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prode.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRODE_CONFIG", path)

	Convey("Given a YAML file named by PRODE_CONFIG", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the file overrides the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFilePlusEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prode.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRODE_CONFIG", path)
	t.Setenv("PRODE_ADDR", ":5050")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env takes precedence over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("PRODE_POINTS_PER_HIT", "0")

	Convey("Given an invalid points_per_hit", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with the invalid-config sentinel", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PRODE_CONFIG", "/nonexistent/prode.yaml")

	Convey("Given a PRODE_CONFIG path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load sentinel", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}
