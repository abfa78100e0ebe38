package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/internal/adapters/repository"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleVote(id, matchID, officialID, fingerprint string) model.Vote {
	return model.Vote{
		ID:          id,
		MatchID:     matchID,
		OfficialID:  officialID,
		Fingerprint: fingerprint,
		Scores:      map[string]float64{"fairplay": 4},
		GlobalNote:  4,
		CreatedAt:   time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC),
	}
}

func TestMemStoreVotes(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()

		Convey("When inserting a vote", func() {
			got, err := s.InsertVote(ctx, sampleVote("v1", "m1", "o1", "fp-1"))

			Convey("Then the vote is stored", func() {
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "v1")
				So(s.CountVotes(ctx), ShouldEqual, 1)
			})

			Convey("And inserting for the same match and device fails", func() {
				_, err := s.InsertVote(ctx, sampleVote("v2", "m1", "o1", "fp-1"))
				So(err, ShouldWrap, repository.ErrDuplicateVote)
				So(s.CountVotes(ctx), ShouldEqual, 1)
			})

			Convey("And the same device may vote on another match", func() {
				_, err := s.InsertVote(ctx, sampleVote("v2", "m2", "o1", "fp-1"))
				So(err, ShouldBeNil)
				So(s.CountVotes(ctx), ShouldEqual, 2)
			})

			Convey("And another device may vote on the same match", func() {
				_, err := s.InsertVote(ctx, sampleVote("v2", "m1", "o1", "fp-2"))
				So(err, ShouldBeNil)
			})

			Convey("And HasVote sees the pair", func() {
				ok, err := s.HasVote(ctx, "m1", "fp-1")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)

				ok, err = s.HasVote(ctx, "m1", "fp-other")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When inserting a vote with padded fingerprint whitespace", func() {
			_, err := s.InsertVote(ctx, sampleVote("v1", "m1", "o1", "fp-1"))
			So(err, ShouldBeNil)

			Convey("Then the normalized fingerprint still collides", func() {
				_, err := s.InsertVote(ctx, sampleVote("v2", "m1", "o1", " fp-1 "))
				So(err, ShouldWrap, repository.ErrDuplicateVote)
			})
		})

		Convey("When mutating a vote after insertion", func() {
			v := sampleVote("v1", "m1", "o1", "fp-1")
			_, err := s.InsertVote(ctx, v)
			So(err, ShouldBeNil)
			v.Scores["fairplay"] = 1

			Convey("Then the stored copy is unaffected", func() {
				votes, err := s.ListVotes(ctx)
				So(err, ShouldBeNil)
				So(votes[0].Scores["fairplay"], ShouldEqual, 4)
			})
		})
	})
}

func TestMemStoreQueries(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with votes across matches and officials", t, func() {
		s := repository.NewMemStore()
		for i, spec := range []struct{ match, official string }{
			{"m1", "o1"}, {"m1", "o1"}, {"m2", "o1"}, {"m3", "o2"},
		} {
			v := sampleVote(fmt.Sprintf("v%d", i), spec.match, spec.official, fmt.Sprintf("fp-%d", i))
			_, err := s.InsertVote(ctx, v)
			So(err, ShouldBeNil)
		}

		Convey("When listing votes for matches", func() {
			votes, err := s.ListVotesForMatches(ctx, []string{"m1", "m3"})
			So(err, ShouldBeNil)
			So(votes, ShouldHaveLength, 3)
		})

		Convey("When listing votes for an official", func() {
			votes, err := s.ListVotesForOfficial(ctx, "o1")
			So(err, ShouldBeNil)
			So(votes, ShouldHaveLength, 3)
		})

		Convey("When listing votes for an unknown scope", func() {
			votes, err := s.ListVotesForMatches(ctx, []string{"m99"})
			So(err, ShouldBeNil)
			So(votes, ShouldBeEmpty)
		})

		Convey("When listing all votes twice", func() {
			first, err := s.ListVotes(ctx)
			So(err, ShouldBeNil)
			second, err := s.ListVotes(ctx)
			So(err, ShouldBeNil)

			Convey("Then the order is deterministic", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestMemStoreReferenceData(t *testing.T) {
	ctx := context.Background()

	Convey("Given preloaded reference data", t, func() {
		kickoff := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
		s := repository.NewMemStore(
			repository.WithMatches([]model.Match{
				{ID: "m1", HomeTeam: "PSG", AwayTeam: "OM", Kickoff: &kickoff, OfficialID: "o1", MatchdayID: "j1"},
			}),
			repository.WithOfficials([]model.Official{
				{ID: "o1", FirstName: "Clement", LastName: "Turpin"},
			}),
		)

		Convey("Then FindMatch resolves known matches", func() {
			m, err := s.FindMatch(ctx, "m1")
			So(err, ShouldBeNil)
			So(m.HomeTeam, ShouldEqual, "PSG")
		})

		Convey("Then FindMatch reports unknown ids", func() {
			_, err := s.FindMatch(ctx, "m9")
			So(err, ShouldWrap, repository.ErrNotFound)
		})

		Convey("Then FindOfficial resolves known officials", func() {
			o, err := s.FindOfficial(ctx, "o1")
			So(err, ShouldBeNil)
			So(o.LastName, ShouldEqual, "Turpin")
		})

		Convey("When upserting a match", func() {
			So(s.PutMatch(ctx, model.Match{ID: "m2", HomeTeam: "OL", AwayTeam: "LOSC", MatchdayID: "j1"}), ShouldBeNil)

			matches, err := s.ListMatches(ctx)
			So(err, ShouldBeNil)
			So(matches, ShouldHaveLength, 2)
		})
	})
}

func TestMemStoreConcurrentInsert(t *testing.T) {
	ctx := context.Background()

	Convey("Given near-simultaneous submissions for one (match, device) pair", t, func() {
		s := repository.NewMemStore()
		const goroutines = 32

		var wg sync.WaitGroup
		wins := make(chan string, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v := sampleVote(fmt.Sprintf("v%d", i), "m1", "o1", "fp-race")
				if _, err := s.InsertVote(ctx, v); err == nil {
					wins <- v.ID
				}
			}(i)
		}
		wg.Wait()
		close(wins)

		Convey("Then exactly one insert commits", func() {
			So(len(wins), ShouldEqual, 1)
			So(s.CountVotes(ctx), ShouldEqual, 1)
		})
	})
}
