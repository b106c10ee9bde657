package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/avismetric/metric/pkg/api"
	"github.com/avismetric/metric/pkg/utils/netaddr"
)

// Client is a struct for communicating with the metric daemon
type Client struct {
	addr       string
	baseURL    string
	httpClient *http.Client
}

// NewClient is a constructor for creating a new Client. addr is either
// "host:port" or a unix socket, see netaddr.Parse.
func NewClient(addr string) (*Client, error) {
	network, address, err := netaddr.Parse(addr)
	if err != nil {
		return nil, err
	}

	baseURL := "http://" + address
	if network == "unix" {
		baseURL = "http://unix"
	}

	return &Client{
		addr:    addr,
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					conn, err := d.DialContext(ctx, network, address)
					if err != nil {
						if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
							return nil, ErrDaemonNotRunning
						}
						if errors.Is(err, os.ErrPermission) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to %s: %v", addr, err)
						return nil, err
					}
					return conn, nil
				},
			},
		},
	}, nil
}

// ResponseError is returned for non-2xx responses. It unwraps to the
// sentinel error named by the daemon's error code, if any.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	Notice     string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("got %d: %s", e.StatusCode, e.Message)
}

func (e *ResponseError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound && e.Code == "" {
		return ErrNotFound
	}
	return api.SentinelOf(e.Code)
}

// Send is a method for sending a request to the metric daemon
func (c *Client) Send(method string, path string, data string) (string, error) {
	return c.SendContext(context.Background(), method, path, data)
}

// SendContext is like Send but carries ctx.
func (c *Client) SendContext(ctx context.Context, method string, path string, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"data":   data,
		"addr":   c.addr,
	}).Debug("sending request")

	var body io.Reader
	switch method {
	case http.MethodGet:
	case http.MethodPost, http.MethodPut:
		body = strings.NewReader(data)
	default:
		return "", fmt.Errorf("unknown method: %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(b)),
		}
		var er api.ErrorResponse
		if json.Unmarshal(b, &er) == nil && er.Error != "" {
			respErr.Code = er.Code
			respErr.Message = er.Error
			respErr.Notice = er.Notice
		}
		return "", respErr
	}

	return string(b), nil
}

// Get is a method for sending a GET request to the metric daemon
func (c *Client) Get(path string) (string, error) {
	return c.Send(http.MethodGet, path, "")
}

// Post is a method for sending a POST request to the metric daemon
func (c *Client) Post(path string, data string) (string, error) {
	return c.Send(http.MethodPost, path, data)
}
