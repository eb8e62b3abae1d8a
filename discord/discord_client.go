// Package discord talks to the Discord REST API: staff channel alerts and the
// OAuth2 flow that identifies admins of the booking dashboard.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

//go:generate mockgen -source=discord_client.go -destination=mocks/discord_mocks.go -package=mocks

type Message struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds"`
}

type Embed struct {
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Author    Author       `json:"author"`
	Fields    []EmbedField `json:"fields"`
	ChannelID string       `json:"channelId"`
	Content   string       `json:"content"`
}

type Author struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	IconURL string `json:"icon_url"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type OAuthToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

type Member struct {
	User  User     `json:"user"`
	Roles []string `json:"roles"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DiscordUser is the authenticated dashboard user.
type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

const defaultBaseURL = "https://discord.com/api/v10"

var ErrEmptyChannel = errors.New("channelID cannot be empty")

type DiscordClient interface {
	SendMessage(ctx context.Context, channelID string, message Message) error
	GetOAuth2Token(ctx context.Context, code string) (*OAuthToken, error)
	GetGuildMember(ctx context.Context, accessToken string) (*Member, error)
}

type Client struct {
	token        string
	clientID     string
	clientSecret string
	redirectURI  string
	serverID     string
	baseURL      string
	client       *http.Client
	cache        *cache.Cache
}

func NewClient(token, clientID, clientSecret, redirectURI, serverID string) *Client {
	return &Client{
		token:        token,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		serverID:     serverID,
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		cache:        cache.New(1*time.Minute, 5*time.Minute),
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) SendMessage(ctx context.Context, channelID string, message Message) error {
	if len(strings.TrimSpace(channelID)) == 0 {
		return ErrEmptyChannel
	}

	body, err := json.Marshal(message)

	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, bytes.NewReader(body), "channels", channelID, "messages")

	if err != nil {
		return err
	}

	c.setHeaders(req)

	_, err = c.do(req)

	return err
}

func (c *Client) GetOAuth2Token(ctx context.Context, code string) (*OAuthToken, error) {
	formValues := url.Values{
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURI},
		"grant_type":    {"authorization_code"},
	}

	req, err := c.newRequest(ctx, http.MethodPost, strings.NewReader(formValues.Encode()), "oauth2", "token")

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)

	if err != nil {
		return nil, err
	}

	var oauthToken = OAuthToken{}

	if err := json.Unmarshal(body, &oauthToken); err != nil {
		return nil, fmt.Errorf("failed reading body: %w", err)
	}

	return &oauthToken, nil
}

// GetGuildMember resolves the member behind a user access token. Members are
// cached per token for a minute.
func (c *Client) GetGuildMember(ctx context.Context, accessToken string) (*Member, error) {
	if cachedMember, found := c.cache.Get(accessToken); found {
		return cachedMember.(*Member), nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, http.NoBody, "users", "@me", "guilds", c.serverID, "member")

	if err != nil {
		return nil, err
	}

	c.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	body, err := c.do(req)

	if err != nil {
		return nil, err
	}

	var member = Member{}

	if err := json.Unmarshal(body, &member); err != nil {
		return nil, fmt.Errorf("failed reading body: %w", err)
	}

	c.cache.Set(accessToken, &member, cache.DefaultExpiration)

	return &member, nil
}

func (c *Client) newRequest(ctx context.Context, method string, body io.Reader, elem ...string) (*http.Request, error) {
	requestURL, err := url.JoinPath(c.baseURL, elem...)

	if err != nil {
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)

	if err != nil {
		return nil, fmt.Errorf("failed create new request: %w", err)
	}

	return req, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer res.Body.Close()

	body, readErr := io.ReadAll(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		if readErr != nil {
			return nil, fmt.Errorf("request failed with status %d; also failed reading body: %w", res.StatusCode, readErr)
		}
		return nil, fmt.Errorf("request failed with status '%v' and body:\n%v", res.StatusCode, string(body))
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read body: %w", readErr)
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)
}

var _ DiscordClient = (*Client)(nil)
