package rates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"asistente/app/client/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/convert", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "PEN", r.URL.Query().Get("to"))
		assert.Equal(t, "100", r.URL.Query().Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"result":370.5}`))
	}))
	defer srv.Close()

	client := rates.NewClientWithBaseURL(srv.URL)

	result, err := client.Convert(context.Background(), "USD", "PEN", 100)

	require.NoError(t, err)
	assert.Equal(t, 370.5, result)
}

func TestConvertMissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	client := rates.NewClientWithBaseURL(srv.URL)

	_, err := client.Convert(context.Background(), "USD", "PEN", 100)

	require.Error(t, err)
	assert.False(t, errors.Is(err, rates.ErrUnavailable))
}

func TestConvertBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := rates.NewClientWithBaseURL(srv.URL)

	_, err := client.Convert(context.Background(), "USD", "PEN", 100)

	require.Error(t, err)
	assert.False(t, errors.Is(err, rates.ErrUnavailable))
}

func TestConvertUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := rates.NewClientWithBaseURL(srv.URL)

	_, err := client.Convert(context.Background(), "USD", "PEN", 100)

	require.Error(t, err)
	assert.True(t, errors.Is(err, rates.ErrUnavailable))
}
