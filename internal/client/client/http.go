package client

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
	"strings"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/netx"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	conn    *grpc.ClientConn
	health  healthpb.HealthClient
}

// NewHTTPClient builds a client for the REST API at baseURL
// (e.g. "http://localhost:8000/api") whose health endpoint listens on
// healthAddr. The gRPC connection is established lazily.
func NewHTTPClient(baseURL, healthAddr string, timeout time.Duration) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}

	conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	return newHTTPClient(baseURL, &http.Client{Timeout: timeout}, conn), nil
}

func newHTTPClient(baseURL string, hc *http.Client, conn *grpc.ClientConn) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		conn:    conn,
	}
	if conn != nil {
		c.health = healthpb.NewHealthClient(conn)
	}
	return c
}

func (c *HTTPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *HTTPClient) CreateUser(ctx context.Context, in api.UserCreate) (api.User, error) {
	var out api.User
	err := c.do(ctx, http.MethodPost, "/users/", nil, in, &out)
	return out, err
}

func (c *HTTPClient) SearchUsers(ctx context.Context, q UserQuery) ([]api.User, error) {
	params := url.Values{}
	if q.Skill != "" {
		params.Set("skill", q.Skill)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	params.Set("public_only", strconv.FormatBool(q.PublicOnly))

	var out []api.User
	err := c.do(ctx, http.MethodGet, "/users/", params, nil, &out)
	return out, err
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (api.User, error) {
	var out api.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, in api.UserUpdate) (api.User, error) {
	var out api.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *HTTPClient) CreateSwapRequest(ctx context.Context, requesterID string, in api.SwapRequestCreate) (swap.Request, error) {
	var out swap.Request
	params := url.Values{"requester_id": {requesterID}}
	err := c.do(ctx, http.MethodPost, "/swap-requests/", params, in, &out)
	return out, err
}

func (c *HTTPClient) UpdateSwapRequest(ctx context.Context, id string, st swap.Status, actorID string) (swap.Request, error) {
	var out swap.Request
	err := c.do(ctx, http.MethodPut, "/swap-requests/"+url.PathEscape(id), actorParams(actorID),
		api.SwapRequestUpdate{Status: st}, &out)
	return out, err
}

func (c *HTTPClient) DeleteSwapRequest(ctx context.Context, id, actorID string) error {
	return c.do(ctx, http.MethodDelete, "/swap-requests/"+url.PathEscape(id), actorParams(actorID), nil, nil)
}

func (c *HTTPClient) ListSwapRequests(ctx context.Context, userID string) ([]swap.Request, error) {
	var out []swap.Request
	err := c.do(ctx, http.MethodGet, "/swap-requests/", url.Values{"user_id": {userID}}, nil, &out)
	return out, err
}

func (c *HTTPClient) Dashboard(ctx context.Context, userID string) (api.Dashboard, error) {
	var out api.Dashboard
	err := c.do(ctx, http.MethodGet, "/dashboard/"+url.PathEscape(userID), nil, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateRating(ctx context.Context, raterID string, in api.RatingCreate) (api.Rating, error) {
	var out api.Rating
	err := c.do(ctx, http.MethodPost, "/ratings", url.Values{"rater_id": {raterID}}, in, &out)
	return out, err
}

func (c *HTTPClient) SearchSkills(ctx context.Context, query string) ([]string, error) {
	var out api.SkillList
	err := c.do(ctx, http.MethodGet, "/search/skills", url.Values{"query": {query}}, nil, &out)
	return out.Skills, err
}

func (c *HTTPClient) PhotoUploadURL(ctx context.Context, userID string) (api.PhotoUpload, error) {
	var out api.PhotoUpload
	err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/photo", nil, nil, &out)
	return out, err
}

// UploadPhoto sends data straight to object storage using a presigned URL
// obtained from PhotoUploadURL.
func (c *HTTPClient) UploadPhoto(ctx context.Context, uploadURL, contentType string, data []byte) error {
	if err := netx.PutPresigned(ctx, c.http, uploadURL, contentType, data); err != nil {
		return c.mapError(err)
	}
	return nil
}

// Ping asks the health service whether the API is serving.
func (c *HTTPClient) Ping(ctx context.Context) error {
	if c.health == nil {
		return ErrUnavailable
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.HealthService})
	if err != nil {
		return c.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func actorParams(actorID string) url.Values {
	if actorID == "" {
		return nil
	}
	return url.Values{"actor_id": {actorID}}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}

	var e api.Error
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &e); err != nil {
		e.Detail = strings.TrimSpace(string(b))
	}
	return &APIError{Status: resp.StatusCode, Detail: e.Detail}
}

// mapError turns transport failures into ErrUnavailable. Caller cancellation
// is passed through unchanged.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return ErrUnavailable
		case codes.NotFound:
			return ErrNotFound
		case codes.Canceled:
			return context.Canceled
		default:
			return fmt.Errorf("rpc error: %w", err)
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
