package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"  Zakât al-Fitr!! ":   "zakat-al-fitr",
		"Clean Water -- Wells": "clean-water-wells",
		"":                     "item",
		"!!!":                  "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 0), in)
	}
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestTrimForSuffix(t *testing.T) {
	assert.Equal(t, "ramadan", trimForSuffix("ramadan-drive", "-2", 9))
	assert.Equal(t, "x", trimForSuffix("anything", "-10", 2))
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, PerPage: 20, Offset: 20})
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPagination(0, Paging{Page: 1, PerPage: 20})
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestResolvePaging(t *testing.T) {
	var got Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 50)
		return nil
	})

	run := func(query string) Paging {
		_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil), -1)
		require.NoError(t, err)
		return got
	}

	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0}, run(""))
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20}, run("?page=3&per_page=10"))
	assert.Equal(t, Paging{Page: 1, PerPage: 50, Offset: 0}, run("?page=-1&limit=500"))
}
