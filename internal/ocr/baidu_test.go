package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBaidu(t *testing.T, ocrHandler http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/2.0/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "ak", r.URL.Query().Get("client_id"))
		fmt.Fprint(w, `{"access_token":"tok123"}`)
	})
	mux.HandleFunc("/rest/2.0/ocr/v1/general_basic", ocrHandler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClientWithBase(srv.URL, "ak", "sk")
}

func TestRecognizeReturnsLinesInOrder(t *testing.T) {
	image := []byte("fake-png-bytes")
	c := fakeBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok123", r.URL.Query().Get("access_token"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), r.PostForm.Get("image"))
		fmt.Fprint(w, `{"words_result":[{"words":"昵称：小明"},{"words":"打卡时间：2026/3/5"},{"words":"这是一句摘录。"}]}`)
	})

	lines, err := c.Recognize(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, []string{"昵称：小明", "打卡时间：2026/3/5", "这是一句摘录。"}, lines)
}

func TestRecognizeEmptyResult(t *testing.T) {
	c := fakeBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"words_result":[]}`)
	})
	lines, err := c.Recognize(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRecognizeAPIError(t *testing.T) {
	c := fakeBaidu(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error_code":216201,"error_msg":"image format error"}`)
	})
	_, err := c.Recognize(context.Background(), []byte("not-an-image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "216201")
}

func TestRecognizeTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	t.Cleanup(srv.Close)
	c := NewClientWithBase(srv.URL, "bad", "bad")

	_, err := c.Recognize(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baidu token")
}
