package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/catalog"
	"github.com/brahmiamine/ArbiNote-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given criteria with a duplicated key", t, func() {
		c := catalog.New([]model.Criterion{
			{Key: "fairplay", Category: model.CategoryArbitre},
			{Key: "pertinence_var", Category: model.CategoryVAR},
			{Key: "fairplay", Category: model.CategoryVAR},
		})

		Convey("Then the first occurrence wins and order is preserved", func() {
			So(c.Len(), ShouldEqual, 2)
			got := c.Criteria()
			So(got[0].Key, ShouldEqual, "fairplay")
			So(got[0].Category, ShouldEqual, model.CategoryArbitre)
			So(got[1].Key, ShouldEqual, "pertinence_var")
		})
	})

	Convey("Given a built catalog", t, func() {
		c := catalog.Default()

		Convey("Then lookup resolves known keys", func() {
			def, ok := c.Lookup("pertinence_var")
			So(ok, ShouldBeTrue)
			So(def.Category, ShouldEqual, model.CategoryVAR)
		})

		Convey("Then lookup rejects unknown keys", func() {
			_, ok := c.Lookup("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("Then the returned slice is a copy", func() {
			got := c.Criteria()
			got[0].Key = "mutated"
			So(c.Criteria()[0].Key, ShouldNotEqual, "mutated")
		})
	})
}

func TestLoad(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "criteria.yaml")
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
		return path
	}

	Convey("Given a valid criteria file", t, func() {
		path := writeFile(t, `
criteria:
  - key: fairplay
    category: arbitre
    labels:
      fr: Fair-play
      en: Fair play
  - key: rapidite_var
    category: var
`)

		Convey("When loading it", func() {
			c, err := catalog.Load(path)
			So(err, ShouldBeNil)

			Convey("Then order and categories come from the file", func() {
				So(c.Len(), ShouldEqual, 2)
				got := c.Criteria()
				So(got[0].Key, ShouldEqual, "fairplay")
				So(got[0].Labels["fr"], ShouldEqual, "Fair-play")
				So(got[1].Category, ShouldEqual, model.CategoryVAR)
			})
		})
	})

	Convey("Given a criteria file with an unknown category", t, func() {
		path := writeFile(t, `
criteria:
  - key: fairplay
    category: fourth-official
`)
		_, err := catalog.Load(path)
		So(err, ShouldNotBeNil)
	})

	Convey("Given an empty criteria file", t, func() {
		path := writeFile(t, "criteria: []\n")
		_, err := catalog.Load(path)
		So(err, ShouldNotBeNil)
	})

	Convey("Given a missing file", t, func() {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		So(err, ShouldNotBeNil)
	})
}
