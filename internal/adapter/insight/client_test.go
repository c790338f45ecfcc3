package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovradar/internal/domain/sov"
)

func sampleMetrics() (sov.MetricsResult, map[string]sov.MetricsResult) {
	overall := sov.MetricsResult{
		Brands: []string{"atomberg"},
		Metrics: map[string]sov.BrandMetrics{
			"atomberg": {PostsWithBrand: 3, ContentShare: 1.0},
		},
	}
	return overall, map[string]sov.MetricsResult{"smart fan": overall}
}

func TestGenerate_SendsMetricsAndReturnsNarrative(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Atomberg leads on engagement."}}]}`)
	}))
	defer srv.Close()

	client := NewClient(Config{
		Token:      "secret",
		Model:      "gpt-4o-mini",
		BaseURL:    srv.URL,
		FocusBrand: "atomberg",
	})

	overall, byKeyword := sampleMetrics()
	text, err := client.Generate(context.Background(), overall, byKeyword)
	require.NoError(t, err)
	assert.Equal(t, "Atomberg leads on engagement.", text)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "atomberg")
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Contains(t, captured.Messages[1].Content, "posts_with_brand")
	assert.Contains(t, captured.Messages[1].Content, "smart fan")
}

func TestGenerate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "secret", Model: "m", BaseURL: srv.URL, FocusBrand: "atomberg"})

	overall, byKeyword := sampleMetrics()
	_, err := client.Generate(context.Background(), overall, byKeyword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_MissingToken(t *testing.T) {
	client := NewClient(Config{Model: "m", BaseURL: "http://unused", FocusBrand: "atomberg"})

	overall, byKeyword := sampleMetrics()
	_, err := client.Generate(context.Background(), overall, byKeyword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token not configured")
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "secret", Model: "m", BaseURL: srv.URL, FocusBrand: "atomberg"})

	overall, byKeyword := sampleMetrics()
	_, err := client.Generate(context.Background(), overall, byKeyword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
