// Package agent talks to the in-guest automation agent over socket.io. The
// agent runs inside a prepared machine and executes browser and OS level
// commands on our behalf; this client issues those commands and waits for
// their results.
package agent

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds connection establishment and each command's
// round trip.
const DefaultTimeout = 15 * time.Second

// Client is a live session with a remote agent.
type Client struct {
	io      *socket.Socket
	timeout time.Duration
}

// Options tunes Dial behavior.
type Options struct {
	// Namespace is the socket.io namespace to join. Empty means the root
	// namespace.
	Namespace string

	// Timeout replaces DefaultTimeout when positive.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Dial connects to the agent at rawURL and blocks until the session is
// established or the timeout elapses.
func Dial(rawURL string, options Options) (*Client, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse agent URL: %w", err)
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if options.InsecureSkipVerify {
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(options.Namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- errs[0].(error)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("agent connection failed: %w", err)
		}
		return &Client{io: io, timeout: timeout}, nil
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for agent connection", timeout)
	}
}

// Command sends one named command to the agent and waits for its
// "<name>:result" reply. The first reply payload is returned as-is.
func (c *Client) Command(name string, payload map[string]any) (any, error) {
	result := make(chan any, 1)
	c.io.Once(types.EventName(name+":result"), func(data ...any) {
		var value any
		if len(data) > 0 {
			value = data[0]
		}
		result <- value
	})

	if err := c.io.Emit(name, payload); err != nil {
		return nil, fmt.Errorf("agent command %q: %w", name, err)
	}

	select {
	case value := <-result:
		return value, nil
	case <-time.After(c.timeout):
		return nil, fmt.Errorf("agent command %q timed out after %s", name, c.timeout)
	}
}

// OpenURL asks the agent to open url in the named browser.
func (c *Client) OpenURL(browser, pageURL string) error {
	_, err := c.Command("open_url", map[string]any{"browser": browser, "url": pageURL})
	return err
}

// CloseBrowser asks the agent to close the named browser.
func (c *Client) CloseBrowser(browser string) error {
	_, err := c.Command("close_browser", map[string]any{"browser": browser})
	return err
}

// Close tears down the session.
func (c *Client) Close() {
	c.io.Disconnect()
}
