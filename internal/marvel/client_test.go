package marvel

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/herodex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPublicKey  = "public-key"
	testPrivateKey = "private-key"
)

var fixedTime = time.UnixMilli(1700000000000)

const listBody = `{
  "code": 200,
  "status": "Ok",
  "data": {
    "offset": 0,
    "limit": 20,
    "total": 100,
    "count": 2,
    "results": [
      {
        "id": 1011334,
        "name": "3-D Man",
        "description": "",
        "thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/c/e0/535fecbbb9784", "extension": "jpg"},
        "comics": {"available": 12},
        "series": {"available": 3},
        "stories": {"available": 21}
      },
      {
        "id": 1017100,
        "name": "A-Bomb (HAS)",
        "description": "Rick Jones has been Hulk's best bud since day one.",
        "thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/3/20/5232158de5b16", "extension": "jpg"},
        "comics": {"available": 4},
        "series": {"available": 2},
        "stories": {"available": 7}
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, testPublicKey, testPrivateKey, nil)
	c.SetClock(func() time.Time { return fixedTime })
	return c
}

func expectedHash() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d%s%s", fixedTime.UnixMilli(), testPrivateKey, testPublicKey)))
	return hex.EncodeToString(sum[:])
}

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(listBody))
	})

	page, err := c.Search(t.Context(), 20, 40, "")
	require.NoError(t, err)

	assert.Equal(t, "/characters", gotPath)
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "40", gotQuery["offset"])
	assert.NotContains(t, gotQuery, "nameStartsWith")
	assert.Equal(t, "1700000000000", gotQuery["ts"])
	assert.Equal(t, testPublicKey, gotQuery["apikey"])
	assert.Equal(t, expectedHash(), gotQuery["hash"])
	for _, v := range gotQuery {
		assert.NotEqual(t, testPrivateKey, v)
	}

	assert.Equal(t, 100, page.Total)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 1011334, page.Results[0].ID)
	assert.Equal(t, "3-D Man", page.Results[0].Name)
	assert.Equal(t, 12, page.Results[0].Comics.Available)
	assert.Equal(t, 3, page.Results[0].Series.Available)
	assert.Equal(t, 21, page.Results[0].Stories.Available)
	assert.Equal(t, "jpg", page.Results[0].Thumbnail.Extension)
	assert.Equal(t, "A-Bomb (HAS)", page.Results[1].Name)
}

func TestSearchNamePrefix(t *testing.T) {
	var prefix string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		prefix = r.URL.Query().Get("nameStartsWith")
		w.Write([]byte(listBody))
	})

	_, err := c.Search(t.Context(), 20, 0, "Spider")
	require.NoError(t, err)
	assert.Equal(t, "Spider", prefix)
}

func TestSearchErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code":"InternalError","message":"boom"}`))
		})
		_, err := c.Search(t.Context(), 20, 0, "")
		assert.Error(t, err)
	})

	t.Run("unauthorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"InvalidCredentials","message":"That hash is invalid"}`))
		})
		_, err := c.Search(t.Context(), 20, 0, "")
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		})
		_, err := c.Search(t.Context(), 20, 0, "")
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(url, testPublicKey, testPrivateKey, nil)
		_, err := c.Search(t.Context(), 20, 0, "")
		assert.ErrorIs(t, err, domain.ErrServerOffline)
	})
}

func TestGetHero(t *testing.T) {
	var gotPath, gotLimit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(listBody))
	})

	hero, err := c.GetHero(t.Context(), 1011334)
	require.NoError(t, err)
	assert.Equal(t, "/characters/1011334", gotPath)
	assert.Empty(t, gotLimit)
	assert.Equal(t, 1011334, hero.ID)
	assert.Equal(t, "3-D Man", hero.Name)
}

func TestGetHeroNotFound(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":200,"status":"Ok","data":{"results":[]}}`))
		})
		hero, err := c.GetHero(t.Context(), 1)
		assert.Nil(t, hero)
		assert.ErrorIs(t, err, domain.ErrHeroNotFound)
	})

	t.Run("404 status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":404,"status":"We couldn't find that character"}`))
		})
		_, err := c.GetHero(t.Context(), 1)
		assert.ErrorIs(t, err, domain.ErrHeroNotFound)
	})

	t.Run("transport error is distinct", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.GetHero(t.Context(), 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrHeroNotFound)
	})
}

func TestSignerChangesWithTime(t *testing.T) {
	s := NewSigner("pub", "priv")
	s.now = func() time.Time { return time.UnixMilli(1) }
	first := s.Sign()
	s.now = func() time.Time { return time.UnixMilli(2) }
	second := s.Sign()

	assert.Equal(t, "1", first.Get("ts"))
	assert.Equal(t, "2", second.Get("ts"))
	assert.NotEqual(t, first.Get("hash"), second.Get("hash"))
	assert.Equal(t, "pub", first.Get("apikey"))
	assert.Len(t, first.Get("hash"), 32)
}
