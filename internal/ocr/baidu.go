package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://aip.baidubce.com"

// Client calls the 百度通用文字识别 (general_basic) API. Each image is one
// request: fetch an access token, then post the base64-encoded bytes and
// collect the detected lines top to bottom.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	client    *http.Client
}

func NewClient(apiKey, secretKey string) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
		// The upstream API has no deadline of its own; one slow image must
		// not stall the rest of the batch.
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBase points the client at a different API host, used in tests.
func NewClientWithBase(baseURL, apiKey, secretKey string) *Client {
	c := NewClient(apiKey, secretKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	params := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.apiKey},
		"client_secret": {c.secretKey},
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/oauth/2.0/token?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token call: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("no access token in response: %.200s", data)
	}
	return result.AccessToken, nil
}

// Recognize returns the detected text lines of one image in reading order.
func (c *Client) Recognize(ctx context.Context, image []byte) ([]string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("baidu token: %w", err)
	}

	form := url.Values{"image": {base64.StdEncoding.EncodeToString(image)}}
	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/rest/2.0/ocr/v1/general_basic?access_token="+url.QueryEscape(token),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr call: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("ocr status %d: %.200s", resp.StatusCode, data)
	}

	var result struct {
		WordsResult []struct {
			Words string `json:"words"`
		} `json:"words_result"`
		ErrorCode int    `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	if result.ErrorCode != 0 {
		return nil, fmt.Errorf("ocr error %d: %s", result.ErrorCode, result.ErrorMsg)
	}

	lines := make([]string, 0, len(result.WordsResult))
	for _, w := range result.WordsResult {
		lines = append(lines, w.Words)
	}
	return lines, nil
}
