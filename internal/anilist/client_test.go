package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okonma/arc/internal/domain"
	"github.com/okonma/arc/internal/log"
)

func TestFetchPageDecodesEnvelope(t *testing.T) {
	var gotRequest gqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"media":[{"id":1,"title":{"romaji":"Sousou no Frieren","english":"Frieren"}}]}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	page, err := client.FetchPage(context.Background(), QueryTrending, PageVars{PerPage: 20})
	require.NoError(t, err)
	require.Len(t, page.Media, 1)
	require.Equal(t, 1, page.Media[0].ID)
	require.Equal(t, "Frieren", page.Media[0].Title.Preferred())

	require.Equal(t, QueryTrending, gotRequest.Query)
}

func TestDoNon2xxReturnsRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	_, err := client.FetchPage(context.Background(), QueryTrending, PageVars{PerPage: 20})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
}

func TestFetchAiringPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"airingSchedules":[{"id":7,"airingAt":1756200000,"episode":4,"media":{"id":99}}]}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	page, err := client.FetchAiringPage(context.Background(), QueryRecentlyAired, AiringRangeVars{PerPage: 25})
	require.NoError(t, err)
	require.Len(t, page.AiringSchedules, 1)
	require.Equal(t, 4, page.AiringSchedules[0].Episode)
	require.Equal(t, 99, page.AiringSchedules[0].Media.ID)
}

func TestFetchDetailNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Media":null}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	_, err := client.FetchDetail(context.Background(), 12345)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		raw, err := json.Marshal(req.Variables)
		require.NoError(t, err)
		var vars MediaVars
		require.NoError(t, json.Unmarshal(raw, &vars))
		require.Equal(t, 5114, vars.ID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Media":{"id":5114,"episodes":64,"relations":{"edges":[{"relationType":"PREQUEL","node":{"id":121}}]}}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	media, err := client.FetchDetail(context.Background(), 5114)
	require.NoError(t, err)
	require.Equal(t, 5114, media.ID)
	require.Equal(t, 64, media.Episodes)
	require.Len(t, media.Relations.Edges, 1)
	require.Equal(t, "PREQUEL", media.Relations.Edges[0].RelationType)
}

func TestMalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, log.NullLogger())
	_, err := client.FetchPage(context.Background(), QueryTrending, PageVars{PerPage: 20})
	require.Error(t, err)
}
