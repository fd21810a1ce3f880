package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "autodash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CohereClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewCohereClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewCohereClientRequiresAPIKey(t *testing.T) {
	_, err := NewCohereClient(Config{})
	require.Error(t, err)
}

func TestSummarizeSendsPromptAndParsesText(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"text": "  Revenue is trending up.  "}`))
	})

	summary, err := client.Summarize(context.Background(), []string{"revenue shows an upward trend over time"})
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, "Revenue is trending up.", *summary)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "command-r", gotBody["model"])
	assert.Contains(t, gotBody["message"], "revenue shows an upward trend over time")
}

func TestSummarizeEmptyMessageList(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	summary, err := client.Summarize(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.False(t, called)
}

func TestSummarizeHTTPFailureIsExternalServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Summarize(context.Background(), []string{"finding"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeExternalService, appErr.Code)
}

func TestSummarizeBlankTextFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "   "}`))
	})

	_, err := client.Summarize(context.Background(), []string{"finding"})
	require.Error(t, err)
}
