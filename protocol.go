package usbrly

import "fmt"

// Command bytes fixed by the board firmware.
const (
	CmdGetSerial  byte = 0x38
	CmdGetVersion byte = 0x5a
	CmdGetStates  byte = 0x5b
	CmdSetStates  byte = 0x5c
	CmdAllOn      byte = 0x64
	CmdRelayOn    byte = 0x65
	CmdAllOff     byte = 0x6e
	CmdRelayOff   byte = 0x6f
)

// NumRelays is the number of output channels on the board.
const NumRelays = 8

const serialLength = 8

// Command is a single request in the board's byte protocol: an opcode
// followed by at most one argument byte. The board's reply carries no type
// tag, so the Command that produced it is needed to decode it.
type Command struct {
	Opcode byte
	Arg    []byte
}

// Response is the decoded reply to one Command. Only the field matching the
// command that produced it is meaningful; set-class commands reply with a
// bare acknowledgement and populate nothing.
type Response struct {
	Serial  string
	Version Version
	States  uint8
}

// Version is the firmware revision reported by the board.
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Encode renders the request bytes written to the board.
func (c Command) Encode() []byte {
	return append([]byte{c.Opcode}, c.Arg...)
}

// Decode interprets the board's reply to this command. It fails when the
// reply length does not match what the command requires, or when a
// set-class command is acknowledged with the wrong byte.
func (c Command) Decode(response []byte) (Response, error) {
	if want := responseLength(c.Opcode); len(response) != want {
		return Response{}, fmt.Errorf("%w: response length %d, want %d", ErrProtocol, len(response), want)
	}
	switch c.Opcode {
	case CmdGetSerial:
		return Response{Serial: string(response)}, nil
	case CmdGetVersion:
		return Response{Version: Version{Major: response[0], Minor: response[1]}}, nil
	case CmdGetStates:
		return Response{States: response[0]}, nil
	case CmdSetStates, CmdAllOn, CmdAllOff, CmdRelayOn, CmdRelayOff:
		// The board acknowledges set commands by echoing the opcode.
		if response[0] != c.Opcode {
			return Response{}, fmt.Errorf("%w: ack %#02x does not match command %#02x", ErrProtocol, response[0], c.Opcode)
		}
		return Response{}, nil
	}
	return Response{}, fmt.Errorf("%w: unknown command %#02x", ErrProtocol, c.Opcode)
}

// responseLength returns how many bytes the board replies with for a
// request starting with the given opcode.
func responseLength(opcode byte) int {
	switch opcode {
	case CmdGetSerial:
		return serialLength
	case CmdGetVersion:
		return 2
	default:
		return 1
	}
}

// Transporter specifies the transport layer. Send performs one blocking
// write of the request followed by one blocking read of the complete
// response.
type Transporter interface {
	Send(request []byte) (response []byte, err error)
}
