package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okonma/arc/internal/account"
	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/log"
	"github.com/okonma/arc/internal/store"
)

// accountServer serves a fixed user with a profile and one favorites list of
// two entries, one of which resolves on AniList and one of which does not.
func accountServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/account":
			w.Write([]byte(`{"$id":"u1","email":"a@b.c","name":"Alice"}`))
		case strings.Contains(r.URL.Path, "/collections/profile/"):
			w.Write([]byte(`{"total":1,"documents":[{"$id":"p1","userId":"u1","username":"alice","displayName":"Alice"}]}`))
		case strings.Contains(r.URL.Path, "/collections/lists/"):
			w.Write([]byte(`{"total":1,"documents":[{"$id":"fav","ownerId":"u1","name":"Favorites","isSystemList":true,"systemListType":"FAVORITES"}]}`))
		case strings.Contains(r.URL.Path, "/collections/list_items/"):
			w.Write([]byte(`{"total":2,"documents":[{"$id":"i1","listId":"fav","anilistId":1},{"$id":"i2","listId":"fav","anilistId":404}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newMyListService(t *testing.T, accountURL, anilistURL string) (*MyListService, *cache.Cache) {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := cache.New(s, log.NullLogger())
	accounts := account.NewClient(accountURL, "project", "db", log.NullLogger())
	accounts.SetSession("secret")
	client := anilist.NewClient(anilistURL, log.NullLogger())
	return NewMyListService(accounts, client, c, log.NullLogger()), c
}

func TestMyListLoadResolvesMedia(t *testing.T) {
	accounts := accountServer()
	defer accounts.Close()

	var detailCalls atomic.Int32
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		detailCalls.Add(1)
		var req struct {
			Variables struct {
				ID int `json:"id"`
			} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if req.Variables.ID == 1 {
			w.Write([]byte(`{"data":{"Media":{"id":1,"title":{"english":"Cowboy Bebop"}}}}`))
			return
		}
		w.Write([]byte(`{"data":{"Media":null}}`))
	}))
	defer media.Close()

	svc, _ := newMyListService(t, accounts.URL, media.URL)
	require.True(t, svc.SignedIn())

	data, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.Profile)
	require.Equal(t, "alice", data.Profile.Username)
	require.Len(t, data.Lists, 1)
	require.Equal(t, "Favorites", data.Lists[0].List.Name)

	// The unresolvable entry is dropped, not fatal.
	require.Len(t, data.Lists[0].Media, 1)
	require.Equal(t, "Cowboy Bebop", data.Lists[0].Media[0].Title.Preferred())

	// A second load serves resolved entries from cache; only the broken
	// entry is retried.
	before := detailCalls.Load()
	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, before+1, detailCalls.Load())
}

func TestMyListLoadWithoutProfile(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/account":
			w.Write([]byte(`{"$id":"u1"}`))
		case strings.Contains(r.URL.Path, "/collections/profile/"):
			w.Write([]byte(`{"total":0,"documents":[]}`))
		default:
			w.Write([]byte(`{"total":0,"documents":[]}`))
		}
	}))
	defer accounts.Close()

	svc, _ := newMyListService(t, accounts.URL, "http://unused")

	data, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, data.Profile)
	require.Empty(t, data.Lists)
}

func TestMyListSignedOut(t *testing.T) {
	accounts := account.NewClient("http://unused", "project", "db", log.NullLogger())

	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	c := cache.New(s, log.NullLogger())

	svc := NewMyListService(accounts, nil, c, log.NullLogger())
	require.False(t, svc.SignedIn())

	svc = NewMyListService(nil, nil, c, log.NullLogger())
	require.False(t, svc.SignedIn())
}

func TestToggleFavoriteExistingList(t *testing.T) {
	var createdItems atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/account":
			w.Write([]byte(`{"$id":"u1"}`))
		case strings.Contains(r.URL.Path, "/collections/lists/"):
			w.Write([]byte(`{"total":1,"documents":[{"$id":"fav","ownerId":"u1","name":"Favorites","systemListType":"FAVORITES"}]}`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"total":0,"documents":[]}`))
		case r.Method == http.MethodPost:
			createdItems.Add(1)
			w.Write([]byte(`{"$id":"item1"}`))
		}
	}))
	defer server.Close()

	svc, _ := newMyListService(t, server.URL, "http://unused")

	added, err := svc.ToggleFavorite(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, int32(1), createdItems.Load())
}

func TestToggleFavoriteCreatesList(t *testing.T) {
	var createdLists atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/account":
			w.Write([]byte(`{"$id":"u1"}`))
		case strings.Contains(r.URL.Path, "/collections/lists/") && r.Method == http.MethodGet:
			w.Write([]byte(`{"total":0,"documents":[]}`))
		case strings.Contains(r.URL.Path, "/collections/lists/") && r.Method == http.MethodPost:
			createdLists.Add(1)
			var payload struct {
				Data map[string]any `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("bad create payload: %v", err)
				return
			}
			if payload.Data["name"] != "Favorites" {
				t.Errorf("unexpected list name: %v", payload.Data["name"])
			}
			w.Write([]byte(`{"$id":"newfav","ownerId":"u1","name":"Favorites"}`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"total":0,"documents":[]}`))
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"$id":"item1"}`))
		}
	}))
	defer server.Close()

	svc, _ := newMyListService(t, server.URL, "http://unused")

	// No favorites list yet: the toggle creates one, then adds the entry.
	added, err := svc.ToggleFavorite(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, int32(1), createdLists.Load())
}
