package slack_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	internalslack "github.com/mauv0809/slackelo/internal/slack"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackClient_PostMessage(t *testing.T) {
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		body, _ := io.ReadAll(r.Body)
		vals, _ := url.ParseQuery(string(body))
		assert.Equal(t, "C123", vals.Get("channel"))
		assert.Contains(t, vals.Get("text"), "have been reset")

		var blocks slack.Blocks
		err := json.Unmarshal([]byte(vals.Get("blocks")), &blocks)
		require.NoError(t, err)
		require.Len(t, blocks.BlockSet, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "channel": "C123", "ts": "12345.6789"}`))
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	api := slack.New("test-token", slack.OptionAPIURL(srv.URL+"/"))
	client := internalslack.NewClientWithAPI(api)

	ts, err := client.PostMessage("C123", internalslack.FormatChannelReset(3), false)

	require.NoError(t, err)
	assert.True(t, handlerCalled, "Expected http handler to be called")
	assert.Equal(t, "12345.6789", ts)
}

func TestSlackClient_PostMessage_DryRun(t *testing.T) {
	handlerCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))
	defer srv.Close()

	api := slack.New("test-token", slack.OptionAPIURL(srv.URL+"/"))
	client := internalslack.NewClientWithAPI(api)

	_, err := client.PostMessage("C123", internalslack.InChannel("hello"), true)

	require.NoError(t, err)
	assert.False(t, handlerCalled, "Expected http handler NOT to be called in dry run")
}

func TestSlackClient_PostMessage_NotConfigured(t *testing.T) {
	client := internalslack.NewClient("")

	_, err := client.PostMessage("C123", internalslack.InChannel("hello"), false)
	assert.Error(t, err)
}
