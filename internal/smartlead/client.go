// Package smartlead drives the campaign platform's REST API.
//
// The client covers exactly the endpoints campaign setup needs: create a
// campaign, upload leads, save the compiled sequence payload, attach
// sending accounts, apply settings and a schedule, and list email
// accounts. Every call is a single attempt; rate limiting is handled by
// the caller pacing its calls, and a failed launch is rerun by the
// operator.
package smartlead

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	outreach "github.com/alnah/go-outreach"
)

// DefaultBaseURL is the hosted platform's API root.
const DefaultBaseURL = "https://server.smartlead.ai/api/v1"

// accountPageSize is the page size used when listing email accounts.
const accountPageSize = 100

// maxErrorBody caps how much of an error response body is kept for the
// error message.
const maxErrorBody = 2048

// Sentinel errors for client operations.
var (
	ErrMissingAPIKey = errors.New("api key is required")
	ErrAPIStatus     = errors.New("unexpected api response status")
)

// Client is a minimal campaign-platform API client.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root (tests, proxies).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = h
	}
}

// WithLogger attaches a structured logger to the client.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client authenticating with the given API key. The
// key travels as the api_key query parameter on every request, which is
// the only authentication scheme the platform offers.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateCampaign creates an empty campaign and returns its ID.
func (c *Client) CreateCampaign(ctx context.Context, name string) (int, error) {
	payload := map[string]string{"name": name}
	var resp struct {
		ID int `json:"id"`
	}
	if err := c.postJSON(ctx, "/campaigns/create", payload, &resp); err != nil {
		return 0, fmt.Errorf("creating campaign %q: %w", name, err)
	}
	c.log.Info().Str("name", name).Int("campaign_id", resp.ID).Msg("campaign created")
	return resp.ID, nil
}

// AddLeads uploads leads to a campaign.
func (c *Client) AddLeads(ctx context.Context, campaignID int, leads []Lead, settings LeadSettings) error {
	payload := struct {
		LeadList []Lead       `json:"lead_list"`
		Settings LeadSettings `json:"settings"`
	}{LeadList: leads, Settings: settings}

	if err := c.postJSON(ctx, campaignPath(campaignID, "leads"), payload, nil); err != nil {
		return fmt.Errorf("adding %d leads to campaign %d: %w", len(leads), campaignID, err)
	}
	c.log.Info().Int("campaign_id", campaignID).Int("leads", len(leads)).Msg("leads uploaded")
	return nil
}

// SaveSequences stores a compiled sequence payload on a campaign.
func (c *Client) SaveSequences(ctx context.Context, campaignID int, steps []outreach.SequenceStep) error {
	payload := struct {
		Sequences []outreach.SequenceStep `json:"sequences"`
	}{Sequences: steps}

	if err := c.postJSON(ctx, campaignPath(campaignID, "sequences"), payload, nil); err != nil {
		return fmt.Errorf("saving %d sequence steps to campaign %d: %w", len(steps), campaignID, err)
	}
	c.log.Info().Int("campaign_id", campaignID).Int("steps", len(steps)).Msg("sequences saved")
	return nil
}

// AttachEmailAccounts assigns sending mailboxes to a campaign.
func (c *Client) AttachEmailAccounts(ctx context.Context, campaignID int, accountIDs []int) error {
	payload := struct {
		EmailAccountIDs []int `json:"email_account_ids"`
	}{EmailAccountIDs: accountIDs}

	if err := c.postJSON(ctx, campaignPath(campaignID, "email-accounts"), payload, nil); err != nil {
		return fmt.Errorf("attaching %d accounts to campaign %d: %w", len(accountIDs), campaignID, err)
	}
	c.log.Info().Int("campaign_id", campaignID).Ints("account_ids", accountIDs).Msg("email accounts attached")
	return nil
}

// ApplySettings applies unsubscribe and stop behavior to a campaign.
func (c *Client) ApplySettings(ctx context.Context, campaignID int, settings CampaignSettings) error {
	if err := c.postJSON(ctx, campaignPath(campaignID, "settings"), settings, nil); err != nil {
		return fmt.Errorf("applying settings to campaign %d: %w", campaignID, err)
	}
	c.log.Info().Int("campaign_id", campaignID).Msg("settings applied")
	return nil
}

// ApplySchedule applies a sending window to a campaign.
func (c *Client) ApplySchedule(ctx context.Context, campaignID int, schedule Schedule) error {
	if err := c.postJSON(ctx, campaignPath(campaignID, "schedule"), schedule, nil); err != nil {
		return fmt.Errorf("scheduling campaign %d: %w", campaignID, err)
	}
	c.log.Info().Int("campaign_id", campaignID).Str("timezone", schedule.Timezone).Msg("schedule applied")
	return nil
}

// ListEmailAccounts fetches every registered sending mailbox, following
// the API's offset pagination until a short page arrives.
func (c *Client) ListEmailAccounts(ctx context.Context) ([]EmailAccount, error) {
	var accounts []EmailAccount
	for offset := 0; ; offset += accountPageSize {
		query := url.Values{
			"offset": {strconv.Itoa(offset)},
			"limit":  {strconv.Itoa(accountPageSize)},
		}
		var page []EmailAccount
		if err := c.getJSON(ctx, "/email-accounts/", query, &page); err != nil {
			return nil, fmt.Errorf("listing email accounts at offset %d: %w", offset, err)
		}
		accounts = append(accounts, page...)
		if len(page) < accountPageSize {
			break
		}
	}
	c.log.Debug().Int("accounts", len(accounts)).Msg("email accounts listed")
	return accounts, nil
}

// postJSON sends payload to path and decodes the response into out when
// out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getJSON fetches path with the extra query parameters and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.log.Debug().Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("api request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: %s", ErrAPIStatus, resp.Status, bytes.TrimSpace(excerpt))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// endpoint joins the base URL, path, query parameters, and the api_key.
func (c *Client) endpoint(path string, query url.Values) string {
	values := url.Values{"api_key": {c.apiKey}}
	for k, vs := range query {
		values[k] = vs
	}
	return c.baseURL + path + "?" + values.Encode()
}

// campaignPath builds a campaign-scoped endpoint path.
func campaignPath(campaignID int, resource string) string {
	return "/campaigns/" + strconv.Itoa(campaignID) + "/" + resource
}
