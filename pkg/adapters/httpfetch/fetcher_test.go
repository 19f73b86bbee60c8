package httpfetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuflow/pkg/adapters/httpfetch"
)

func TestCall_DecodesRecordList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tracks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"a","name":"Track A"},{"id":"b","name":"Track B"}]`))
	}))
	defer srv.Close()

	f := httpfetch.New(srv.URL)
	records, err := f.Call(context.Background(), "/api/tracks", "GET")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Track A", records[0]["name"])
}

func TestCall_WrapsSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"a"}`))
	}))
	defer srv.Close()

	f := httpfetch.New(srv.URL)
	records, err := f.Call(context.Background(), "/api/thing", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0]["id"])
}

func TestCall_ServerErrorDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := httpfetch.New(srv.URL)
	records, err := f.Call(context.Background(), "/api/tracks", "GET")
	require.NoError(t, err, "failures must not surface as errors")
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestCall_MalformedBodyDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	f := httpfetch.New(srv.URL)
	records, err := f.Call(context.Background(), "/api/tracks", "GET")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCall_UnreachableBackendDegradesToEmpty(t *testing.T) {
	f := httpfetch.New("http://127.0.0.1:0")
	records, err := f.Call(context.Background(), "/api/tracks", "GET")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCall_AbsoluteURLBypassesBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := httpfetch.New("http://other.invalid")
	records, err := f.Call(context.Background(), srv.URL+"/api/tracks", "GET")
	require.NoError(t, err)
	assert.Empty(t, records)
}
