package usbrly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	assert.Equal(t, []byte{0x38}, Command{Opcode: CmdGetSerial}.Encode())
	assert.Equal(t, []byte{0x5a}, Command{Opcode: CmdGetVersion}.Encode())
	assert.Equal(t, []byte{0x5b}, Command{Opcode: CmdGetStates}.Encode())
	assert.Equal(t, []byte{0x64}, Command{Opcode: CmdAllOn}.Encode())
	assert.Equal(t, []byte{0x6e}, Command{Opcode: CmdAllOff}.Encode())
}

func TestEncodeSetStates(t *testing.T) {
	for _, mask := range []uint8{0x00, 0x01, 0x0a, 0xf1, 0xff} {
		request := Command{Opcode: CmdSetStates, Arg: []byte{mask}}.Encode()
		assert.Equal(t, []byte{0x5c, mask}, request)
	}
}

func TestEncodeSetStateInjective(t *testing.T) {
	seen := make(map[string]bool)
	for relay := uint8(0); relay < NumRelays; relay++ {
		for _, on := range []bool{false, true} {
			op := CmdRelayOff
			if on {
				op = CmdRelayOn
			}
			request := Command{Opcode: op, Arg: []byte{relay}}.Encode()
			require.Len(t, request, 2)
			assert.Equal(t, relay, request[1])
			assert.False(t, seen[string(request)], "request % x produced twice", request)
			seen[string(request)] = true
		}
	}
}

func TestDecodeSerial(t *testing.T) {
	response, err := Command{Opcode: CmdGetSerial}.Decode([]byte("00015432"))
	require.NoError(t, err)
	assert.Equal(t, "00015432", response.Serial)
}

func TestDecodeSerialBadLength(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9} {
		_, err := Command{Opcode: CmdGetSerial}.Decode(make([]byte, n))
		assert.ErrorIs(t, err, ErrProtocol, "length %d", n)
	}
}

func TestDecodeVersion(t *testing.T) {
	response, err := Command{Opcode: CmdGetVersion}.Decode([]byte{8, 2})
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 8, Minor: 2}, response.Version)
	assert.Equal(t, "8.2", response.Version.String())
}

func TestDecodeStates(t *testing.T) {
	for b := 0; b <= 0xff; b++ {
		response, err := Command{Opcode: CmdGetStates}.Decode([]byte{byte(b)})
		require.NoError(t, err)
		require.Equal(t, uint8(b), response.States)
	}
}

func TestDecodeAck(t *testing.T) {
	_, err := Command{Opcode: CmdAllOn}.Decode([]byte{CmdAllOn})
	assert.NoError(t, err)

	_, err = Command{Opcode: CmdSetStates, Arg: []byte{0x0f}}.Decode([]byte{CmdSetStates})
	assert.NoError(t, err)
}

func TestDecodeAckMismatch(t *testing.T) {
	_, err := Command{Opcode: CmdAllOn}.Decode([]byte{CmdAllOff})
	assert.ErrorIs(t, err, ErrProtocol)

	_, err = Command{Opcode: CmdRelayOn, Arg: []byte{3}}.Decode(nil)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestDecodeUnknownCommand(t *testing.T) {
	_, err := Command{Opcode: 0x00}.Decode([]byte{0x00})
	assert.ErrorIs(t, err, ErrProtocol)
}
