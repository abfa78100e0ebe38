package eligibility_test

import (
	"testing"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/eligibility"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	at := func(offset time.Duration) *time.Time {
		ts := now.Add(offset)
		return &ts
	}

	Convey("Given a match without an assigned official", t, func() {
		Convey("Then voting is blocked even long after kickoff", func() {
			So(eligibility.Evaluate(false, at(-3*time.Hour), now), ShouldEqual, eligibility.ReasonNoOfficial)
			So(eligibility.CanVote(false, at(-3*time.Hour), now), ShouldBeFalse)
		})
	})

	Convey("Given a match with an assigned official", t, func() {
		Convey("When the kickoff date is still pending", func() {
			So(eligibility.Evaluate(true, nil, now), ShouldEqual, eligibility.ReasonNotStarted)
		})

		Convey("When the kickoff is in the future", func() {
			So(eligibility.Evaluate(true, at(time.Hour), now), ShouldEqual, eligibility.ReasonNotStarted)
		})

		Convey("When 29 minutes have elapsed", func() {
			So(eligibility.CanVote(true, at(-29*time.Minute), now), ShouldBeFalse)
			So(eligibility.Evaluate(true, at(-29*time.Minute), now), ShouldEqual, eligibility.ReasonNotOpenYet)
		})

		Convey("When exactly 30 minutes have elapsed", func() {
			So(eligibility.CanVote(true, at(-eligibility.VotingOpensAfter), now), ShouldBeTrue)
		})

		Convey("When 31 minutes have elapsed", func() {
			So(eligibility.CanVote(true, at(-31*time.Minute), now), ShouldBeTrue)
			So(eligibility.Evaluate(true, at(-31*time.Minute), now), ShouldEqual, eligibility.ReasonEligible)
		})

		Convey("When the match was played days ago", func() {
			// No upper bound: post-hoc rating stays open.
			So(eligibility.CanVote(true, at(-96*time.Hour), now), ShouldBeTrue)
		})
	})
}

func TestReasonMessage(t *testing.T) {
	Convey("Given every reason", t, func() {
		reasons := []eligibility.Reason{
			eligibility.ReasonEligible,
			eligibility.ReasonNoOfficial,
			eligibility.ReasonNotStarted,
			eligibility.ReasonNotOpenYet,
		}

		Convey("Then each carries a user-readable message", func() {
			for _, r := range reasons {
				So(r.Message(), ShouldNotBeEmpty)
			}
		})
	})
}
