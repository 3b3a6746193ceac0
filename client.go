package usbrly

import (
	"fmt"
	"time"
)

// Client drives one relay board through a Transporter. Every public method
// performs exactly one write/read round trip against the board; nothing is
// cached and no command is retried.
//
// A Client must not be used from multiple goroutines at once: the protocol
// has no request identifiers, so interleaved exchanges desynchronize the
// request/response pairing on the line.
type Client struct {
	// CommandDelay, when set, is the minimum pause between the end of one
	// round trip and the next write. The board can drop single relay
	// commands that arrive back to back.
	CommandDelay time.Duration

	transporter Transporter
	lastSend    time.Time
}

// NewClient binds a client to a transporter, typically a *ClientHandler.
func NewClient(t Transporter) *Client {
	return &Client{transporter: t}
}

func (c *Client) send(cmd Command) (Response, error) {
	if c.CommandDelay > 0 && !c.lastSend.IsZero() {
		if wait := c.CommandDelay - time.Since(c.lastSend); wait > 0 {
			time.Sleep(wait)
		}
	}
	raw, err := c.transporter.Send(cmd.Encode())
	c.lastSend = time.Now()
	if err != nil {
		return Response{}, err
	}
	return cmd.Decode(raw)
}

// GetSerial returns the board's 8 character serial number.
func (c *Client) GetSerial() (string, error) {
	response, err := c.send(Command{Opcode: CmdGetSerial})
	return response.Serial, err
}

// GetVersion returns the board's firmware revision.
func (c *Client) GetVersion() (Version, error) {
	response, err := c.send(Command{Opcode: CmdGetVersion})
	return response.Version, err
}

// GetStates returns the state of all relays as a bitmask, bit i carrying
// relay i.
func (c *Client) GetStates() (uint8, error) {
	response, err := c.send(Command{Opcode: CmdGetStates})
	return response.States, err
}

// SetStates switches every relay in one command: bits set in mask turn on,
// cleared bits turn off.
func (c *Client) SetStates(mask uint8) error {
	_, err := c.send(Command{Opcode: CmdSetStates, Arg: []byte{mask}})
	return err
}

// SetAll switches every relay on or off.
func (c *Client) SetAll(on bool) error {
	op := CmdAllOff
	if on {
		op = CmdAllOn
	}
	_, err := c.send(Command{Opcode: op})
	return err
}

// SetState switches a single relay, leaving the others untouched. relay
// must be in [0, NumRelays).
func (c *Client) SetState(relay uint8, on bool) error {
	if relay >= NumRelays {
		return fmt.Errorf("%w: %d", ErrRelayOutOfRange, relay)
	}
	op := CmdRelayOff
	if on {
		op = CmdRelayOn
	}
	_, err := c.send(Command{Opcode: op, Arg: []byte{relay}})
	return err
}
