package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/repository"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
)

// newMongoStore connects to the instance named by ARBINOTE_TEST_MONGO_URI,
// using a throwaway database per test run. Skips when the variable is unset.
func newMongoStore(t *testing.T, ctx context.Context) *repository.MongoStore {
	t.Helper()

	uri := os.Getenv("ARBINOTE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ARBINOTE_TEST_MONGO_URI not set")
	}

	database := "arbinote_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s, err := repository.NewMongoStore(ctx, uri, database)
	if err != nil {
		t.Fatalf("connect mongo store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
	return s
}

func TestMongoStoreVotes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s := newMongoStore(t, ctx)

	Convey("Given a Mongo-backed store", t, func() {
		Convey("When inserting a vote", func() {
			got, err := s.InsertVote(ctx, sampleVote("mg-v1", "mg-m1", "mg-o1", "fp-1"))

			Convey("Then the vote is stored", func() {
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "mg-v1")
			})

			Convey("And the unique index rejects a duplicate pair", func() {
				_, err := s.InsertVote(ctx, sampleVote("mg-v2", "mg-m1", "mg-o1", "fp-1"))
				So(err, ShouldWrap, repository.ErrDuplicateVote)
			})

			Convey("And a padded fingerprint still collides", func() {
				_, err := s.InsertVote(ctx, sampleVote("mg-v3", "mg-m1", "mg-o1", " fp-1 "))
				So(err, ShouldWrap, repository.ErrDuplicateVote)
			})

			Convey("And HasVote sees the pair", func() {
				ok, err := s.HasVote(ctx, "mg-m1", "fp-1")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)

				ok, err = s.HasVote(ctx, "mg-m1", "fp-other")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestMongoStoreReferenceData(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s := newMongoStore(t, ctx)

	kickoff := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	if err := s.PutMatch(ctx, model.Match{
		ID: "mg-m1", HomeTeam: "PSG", AwayTeam: "OM",
		Kickoff: &kickoff, OfficialID: "mg-o1", MatchdayID: "j1",
	}); err != nil {
		t.Fatalf("put match: %v", err)
	}
	if err := s.PutOfficial(ctx, model.Official{ID: "mg-o1", FirstName: "Clement", LastName: "Turpin"}); err != nil {
		t.Fatalf("put official: %v", err)
	}

	Convey("Given upserted reference data", t, func() {
		Convey("Then FindMatch resolves the match", func() {
			m, err := s.FindMatch(ctx, "mg-m1")
			So(err, ShouldBeNil)
			So(m.HomeTeam, ShouldEqual, "PSG")
			So(m.Kickoff, ShouldNotBeNil)
		})

		Convey("Then FindMatch reports unknown ids", func() {
			_, err := s.FindMatch(ctx, "mg-m9")
			So(err, ShouldWrap, repository.ErrNotFound)
		})

		Convey("Then FindOfficial resolves the official", func() {
			o, err := s.FindOfficial(ctx, "mg-o1")
			So(err, ShouldBeNil)
			So(o.FullName(), ShouldEqual, "Clement Turpin")
		})

		Convey("When upserting the same match again", func() {
			m, _ := s.FindMatch(ctx, "mg-m1")
			m.AwayTeam = "LOSC"
			So(s.PutMatch(ctx, m), ShouldBeNil)

			got, err := s.FindMatch(ctx, "mg-m1")
			So(err, ShouldBeNil)
			So(got.AwayTeam, ShouldEqual, "LOSC")
		})
	})
}
