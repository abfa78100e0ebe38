package identity_test

import (
	"testing"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/identity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVoteKey(t *testing.T) {
	Convey("Given a match id and a device fingerprint", t, func() {
		Convey("Then the key is the composite of both", func() {
			So(identity.VoteKey("m-42", "fp-abc"), ShouldEqual, "m-42:fp-abc")
		})

		Convey("Then the same pair always yields the same key", func() {
			So(identity.VoteKey("m-42", "fp-abc"), ShouldEqual, identity.VoteKey("m-42", "fp-abc"))
		})

		Convey("Then different matches yield different keys for one device", func() {
			So(identity.VoteKey("m-42", "fp-abc"), ShouldNotEqual, identity.VoteKey("m-43", "fp-abc"))
		})

		Convey("Then fingerprint whitespace is normalized away", func() {
			So(identity.VoteKey("m-42", "  fp-abc\n"), ShouldEqual, "m-42:fp-abc")
		})
	})
}
