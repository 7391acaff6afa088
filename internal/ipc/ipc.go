// Package ipc talks to the compositor's control socket.
//
// Messages are single-line JSON over a unix socket, fire-and-forget except
// for queries. Failures are returned to the caller, which logs and moves
// on; the shell never blocks a gesture on compositor IPC.
package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// dialTimeout bounds socket operations so a wedged compositor cannot stall
// the caller for long.
const dialTimeout = time.Second

// Message is the compositor control protocol envelope.
type Message struct {
	DisplayPower *bool    `json:"display_power,omitempty"`
	Orientation  *Lock    `json:"orientation,omitempty"`
	Scale        *float64 `json:"scale,omitempty"`
	GetScale     bool     `json:"get_scale,omitempty"`
}

// Lock carries the orientation lock state.
type Lock struct {
	Locked bool `json:"locked"`
}

// Client sends control messages to the compositor.
type Client struct {
	path string
}

// New creates a client for the default compositor socket, derived from the
// Wayland display name.
func New() *Client {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	return &Client{path: filepath.Join(runtimeDir, fmt.Sprintf("catacomb-%s.sock", display))}
}

// NewWithPath creates a client for an explicit socket path.
func NewWithPath(path string) *Client {
	return &Client{path: path}
}

// SetDisplayPower turns the display on or off.
func (c *Client) SetDisplayPower(on bool) error {
	return c.send(Message{DisplayPower: &on})
}

// SetOrientationLock locks or unlocks the display orientation.
func (c *Client) SetOrientationLock(locked bool) error {
	return c.send(Message{Orientation: &Lock{Locked: locked}})
}

// SetScale updates the compositor's output scale.
func (c *Client) SetScale(scale float64) error {
	return c.send(Message{Scale: &scale})
}

// Scale queries the current output scale.
func (c *Client) Scale() (float64, error) {
	reply, err := c.roundTrip(Message{GetScale: true})
	if err != nil {
		return 0, err
	}
	if reply.Scale == nil {
		return 0, fmt.Errorf("compositor reply missing scale")
	}
	return *reply.Scale, nil
}

func (c *Client) send(msg Message) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	return json.NewEncoder(conn).Encode(msg)
}

func (c *Client) roundTrip(msg Message) (Message, error) {
	var reply Message

	conn, err := c.dial()
	if err != nil {
		return reply, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return reply, fmt.Errorf("sending compositor message: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return reply, fmt.Errorf("reading compositor reply: %w", err)
	}
	if err := json.Unmarshal(line, &reply); err != nil {
		return reply, fmt.Errorf("parsing compositor reply: %w", err)
	}
	return reply, nil
}

func (c *Client) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("unix", c.path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to compositor at %s: %w", c.path, err)
	}
	conn.SetDeadline(time.Now().Add(dialTimeout))
	return conn, nil
}
