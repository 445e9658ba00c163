package labeldetect

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pupper-backend/internal/platform/httpclient"
)

type stubTransport struct {
	status int
	body   any
}

func (s stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	b, _ := json.Marshal(s.body)
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader(b)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClassifier(t *testing.T, status int, body any) *Classifier {
	t.Helper()
	client := httpclient.NewWithTransport(0, stubTransport{status: status, body: body})
	client.BaseURL = "http://labels.test"
	return New(client, 0)
}

func label(name string, conf float64) map[string]any {
	return map[string]any{"name": name, "confidence": conf}
}

func TestClassify_LabradorLabel(t *testing.T) {
	c := newTestClassifier(t, http.StatusOK, map[string]any{
		"labels": []any{label("Dog", 95.2), label("Labrador Retriever", 88.7)},
	})

	res, err := c.Classify(context.Background(), "uploads/x.png")
	require.NoError(t, err)
	assert.True(t, res.IsDog)
	assert.True(t, res.IsLabrador)
	assert.InDelta(t, 88.7, res.Confidence, 0.001)
	assert.Len(t, res.Labels, 2)
}

func TestClassify_DogButNotLabrador(t *testing.T) {
	c := newTestClassifier(t, http.StatusOK, map[string]any{
		"labels": []any{label("Dog", 91.0), label("Poodle", 85.0)},
	})

	res, err := c.Classify(context.Background(), "uploads/x.png")
	require.NoError(t, err)
	assert.True(t, res.IsDog)
	assert.False(t, res.IsLabrador)
}

func TestClassify_LowConfidenceLabelsIgnored(t *testing.T) {
	// "labrador" por debajo del umbral de 70 no cuenta.
	c := newTestClassifier(t, http.StatusOK, map[string]any{
		"labels": []any{label("Labrador", 42.0)},
	})

	res, err := c.Classify(context.Background(), "uploads/x.png")
	require.NoError(t, err)
	assert.False(t, res.IsDog)
	assert.False(t, res.IsLabrador)
	assert.Len(t, res.Labels, 1)
}

func TestClassify_UpstreamError(t *testing.T) {
	c := newTestClassifier(t, http.StatusBadGateway, map[string]any{"error": "boom"})

	_, err := c.Classify(context.Background(), "uploads/x.png")
	require.Error(t, err)

	var httpErr *httpclient.HTTPError
	assert.ErrorAs(t, err, &httpErr)
}
