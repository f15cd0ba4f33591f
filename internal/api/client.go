package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
)

// referralConflictMessage is the exact error message the backend uses
// for an invalid referral code. Anything else is a generic failure.
const referralConflictMessage = "Invalid referral"

// Client talks to the RecycleFlux backend. Every admin call carries the
// operator's bearer token; no retries, no cancellation beyond the
// caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type SignupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}

type SignupResponse struct {
	Token           string         `json:"token"`
	User            domain.Profile `json:"user"`
	Passkey         string         `json:"passkey"`
	ReferralApplied bool           `json:"referralApplied"`
}

func (c *Client) Signup(ctx context.Context, reqBody SignupRequest) (*SignupResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal signup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/auth/signup", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out SignupResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCampaigns(ctx context.Context, token string, createdByMe bool) ([]domain.Campaign, error) {
	q := url.Values{}
	if createdByMe {
		q.Set("createdByMe", "true")
	}
	endpoint := c.baseURL + "/admin/campaigns"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out []domain.Campaign
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCampaign(ctx context.Context, token, id string) (*domain.Campaign, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/admin/campaigns/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out domain.Campaign
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProofs(ctx context.Context, token, campaignID string) ([]domain.ProofGroup, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/admin/campaigns/"+campaignID+"/proofs", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out []domain.ProofGroup
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCampaign submits a multipart campaign payload, built by the
// forms package. The response is the authoritative campaign record.
func (c *Client) CreateCampaign(ctx context.Context, token string, body io.Reader, contentType string) (*domain.Campaign, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/admin/campaigns", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	var out domain.Campaign
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, token, id string, body io.Reader, contentType string) (*domain.Campaign, error) {
	req, err := http.NewRequestWithContext(ctx, "PUT", c.baseURL+"/admin/campaigns/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	var out domain.Campaign
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, token, id string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/admin/campaigns/"+id, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, nil)
}

func (c *Client) CreateTask(ctx context.Context, token, campaignID string, body io.Reader, contentType string) (*domain.Task, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/admin/campaigns/"+campaignID+"/tasks", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	var out domain.Task
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, campaignID, taskID string, body io.Reader, contentType string) (*domain.Task, error) {
	req, err := http.NewRequestWithContext(ctx, "PUT", c.baseURL+"/admin/campaigns/"+campaignID+"/tasks/"+taskID, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	var out domain.Task
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, campaignID, taskID string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/admin/campaigns/"+campaignID+"/tasks/"+taskID, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, nil)
}

// ApproveProof sends a single review decision for one (task, user) pair.
func (c *Client) ApproveProof(ctx context.Context, token, campaignID, taskID, userID string, approve bool) error {
	payload, err := json.Marshal(map[string]any{
		"taskId":  taskID,
		"userId":  userID,
		"approve": approve,
	})
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/admin/campaigns/"+campaignID+"/approve-proof", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, nil)
}

// do executes the request, maps error responses onto domain errors and
// decodes the success body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// decodeError extracts the conventional {message, details} error shape,
// falling back to a generic string when the body has no message.
func decodeError(status int, body []byte) error {
	var errBody struct {
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		if errBody.Message == referralConflictMessage {
			return &domain.ReferralConflictError{Details: errBody.Details}
		}
		return &Error{Status: status, Message: errBody.Message}
	}
	return &Error{Status: status, Message: "Something went wrong"}
}

// Error is a generic backend error surfaced as a dismissable notice.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}
