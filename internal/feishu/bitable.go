package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paper-checkin/internal/config"
)

// Field names in the bitable, as the community admins maintain them.
const (
	fieldPubDate  = "发布日期"
	fieldAbstract = "论文摘要"
	fieldNickname = "昵称"
)

// Client reads the check-in reference data from 飞书多维表格: the abstract
// table holding one row per day's paper, and the optional member roster.
type Client struct {
	baseURL       string
	appID         string
	appSecret     string
	appToken      string
	tableID       string
	memberTableID string
	client        *http.Client
	now           func() time.Time
}

func NewClient(cfg config.FeishuConfig) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		appID:         cfg.AppID,
		appSecret:     cfg.AppSecret,
		appToken:      cfg.AppToken,
		tableID:       cfg.TableID,
		memberTableID: cfg.MemberTableID,
		client:        &http.Client{Timeout: 15 * time.Second},
		now:           time.Now,
	}
}

type record struct {
	Fields map[string]any `json:"fields"`
}

func (c *Client) tenantToken(ctx context.Context) (string, error) {
	payload, _ := json.Marshal(map[string]string{
		"app_id":     c.appID,
		"app_secret": c.appSecret,
	})
	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/open-apis/auth/v3/tenant_access_token/internal", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token call: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		TenantAccessToken string `json:"tenant_access_token"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if result.TenantAccessToken == "" {
		return "", fmt.Errorf("no tenant token in response: %.200s", data)
	}
	return result.TenantAccessToken, nil
}

func (c *Client) fetchRecords(ctx context.Context, tableID string, pageSize int) ([]record, error) {
	token, err := c.tenantToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("feishu token: %w", err)
	}

	path := fmt.Sprintf("%s/open-apis/bitable/v1/apps/%s/tables/%s/records", c.baseURL, c.appToken, tableID)
	if pageSize > 0 {
		path += fmt.Sprintf("?page_size=%d", pageSize)
	}
	req, err := http.NewRequestWithContext(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("build records request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("records call: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("records status %d: %.200s", resp.StatusCode, data)
	}
	var result struct {
		Data struct {
			Items []record `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode records response: %w", err)
	}
	return result.Data.Items, nil
}

// FetchTodayAbstract returns today's reference abstract: the record whose
// 发布日期 starts with today's date, otherwise the first record (admins keep
// the newest on top), otherwise empty. Empty means "not yet configured" and
// is not an error.
func (c *Client) FetchTodayAbstract(ctx context.Context) (string, error) {
	records, err := c.fetchRecords(ctx, c.tableID, 10)
	if err != nil {
		return "", err
	}
	return pickAbstract(records, c.now().Format("2006-01-02")), nil
}

func pickAbstract(records []record, today string) string {
	for _, rec := range records {
		pub, _ := rec.Fields[fieldPubDate].(string)
		if pub != "" && strings.HasPrefix(pub, today) {
			abstract, _ := rec.Fields[fieldAbstract].(string)
			return strings.TrimSpace(abstract)
		}
	}
	if len(records) > 0 {
		abstract, _ := records[0].Fields[fieldAbstract].(string)
		return strings.TrimSpace(abstract)
	}
	return ""
}

// FetchMemberNicknames returns the roster of known nicknames. An unset
// member table disables the roster, which passes every nickname.
func (c *Client) FetchMemberNicknames(ctx context.Context) ([]string, error) {
	if c.memberTableID == "" {
		return nil, nil
	}
	records, err := c.fetchRecords(ctx, c.memberTableID, 0)
	if err != nil {
		return nil, err
	}
	var nicknames []string
	for _, rec := range records {
		if nick, _ := rec.Fields[fieldNickname].(string); strings.TrimSpace(nick) != "" {
			nicknames = append(nicknames, strings.TrimSpace(nick))
		}
	}
	return nicknames, nil
}
