package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMailgunSend(t *testing.T) {
	var gotTo, gotSubject string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v3/mg.sankofa.africa/messages"), r.URL.Path)
		gotTo = r.FormValue("to")
		gotSubject = r.FormValue("subject")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<20240501@mg.sankofa.africa>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	n := NewMailgun("mg.sankofa.africa", "key-test", "Sankofa <noreply@sankofa.africa>").WithAPIBase(srv.URL)
	err := n.Send(context.Background(), Email{To: "ama@example.com", Subject: "Collection verified", Body: "12.5 kg verified"})
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", gotTo)
	assert.Equal(t, "Collection verified", gotSubject)
}

func TestMailgunSendFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`Forbidden`))
	}))
	defer srv.Close()

	n := NewMailgun("mg.sankofa.africa", "bad", "noreply@sankofa.africa").WithAPIBase(srv.URL)
	err := n.Send(context.Background(), Email{To: "ama@example.com", Subject: "x", Body: "y"})
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load())
	assert.Contains(t, err.Error(), "401")
}

func TestVersionedBase(t *testing.T) {
	assert.Equal(t, "https://api.eu.mailgun.net/v3", versionedBase("https://api.eu.mailgun.net"))
	assert.Equal(t, "https://api.eu.mailgun.net/v3", versionedBase("https://api.eu.mailgun.net/v3/"))
	assert.Equal(t, "http://127.0.0.1:9000/v3", versionedBase("http://127.0.0.1:9000/"))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Send(context.Background(), Email{To: "kofi@example.com", Subject: "New message"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kofi@example.com", logs.All()[0].ContextMap()["to"])
}
