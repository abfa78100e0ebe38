package voteguard_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/identity"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/voteguard"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new guard", t, func() {
		g := voteguard.New()

		Convey("Then it starts empty", func() {
			So(g.Size(), ShouldEqual, 0)
		})

		Convey("When recording a fresh vote key", func() {
			key := identity.VoteKey("m1", "fp-1")
			seen := g.SeenAndRecord(ctx, key)

			Convey("Then it is newly recorded", func() {
				So(seen, ShouldBeFalse)
				So(g.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports a repeat", func() {
				So(g.SeenAndRecord(ctx, key), ShouldBeTrue)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same device votes on two different matches", func() {
			So(g.SeenAndRecord(ctx, identity.VoteKey("m1", "fp-1")), ShouldBeFalse)
			So(g.SeenAndRecord(ctx, identity.VoteKey("m2", "fp-1")), ShouldBeFalse)

			Convey("Then both keys are independent", func() {
				So(g.Size(), ShouldEqual, 2)
			})
		})

		Convey("When unrecording a key after a failed insert", func() {
			key := identity.VoteKey("m1", "fp-1")
			g.SeenAndRecord(ctx, key)
			g.Unrecord(ctx, key)

			Convey("Then the fast path is open again", func() {
				So(g.Size(), ShouldEqual, 0)
				So(g.SeenAndRecord(ctx, key), ShouldBeFalse)
			})
		})

		Convey("When unrecording a key that was never recorded", func() {
			g.Unrecord(ctx, "m1:never")

			Convey("Then nothing changes", func() {
				So(g.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded guard", t, func() {
		g := voteguard.New(voteguard.WithMaxSize(3))

		Convey("When recording more keys than the bound", func() {
			for i := 0; i < 5; i++ {
				g.SeenAndRecord(ctx, fmt.Sprintf("m%d:fp", i))
			}

			Convey("Then the size never exceeds the bound", func() {
				So(g.Size(), ShouldEqual, 3)
			})

			Convey("And evicted keys fall back to the authoritative check", func() {
				// The oldest key was evicted; recording it again is "new".
				So(g.SeenAndRecord(ctx, "m0:fp"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded guard", t, func() {
		g := voteguard.New(voteguard.WithMaxSize(0))

		Convey("When recording many keys", func() {
			for i := 0; i < 500; i++ {
				g.SeenAndRecord(ctx, fmt.Sprintf("m%d:fp", i))
			}

			Convey("Then all of them stay", func() {
				So(g.Size(), ShouldEqual, 500)
			})
		})
	})

	Convey("Given concurrent submissions of the same key", t, func() {
		g := voteguard.New()
		const goroutines = 32

		var wg sync.WaitGroup
		fresh := make(chan bool, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !g.SeenAndRecord(ctx, "m1:fp-race") {
					fresh <- true
				}
			}()
		}
		wg.Wait()
		close(fresh)

		Convey("Then exactly one submission wins the fast path", func() {
			So(len(fresh), ShouldEqual, 1)
			So(g.Size(), ShouldEqual, 1)
		})
	})
}
