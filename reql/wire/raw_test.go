package wire

import (
	"encoding/binary"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMarshaler lets tests build an arbitrary ast/options payload without
// depending on the reql package.
type fakeMarshaler struct{ raw json.RawMessage }

func (f fakeMarshaler) MarshalJSON() ([]byte, error) { return f.raw, nil }

func TestTokensStartAtOneAndIncrementMonotonically(t *testing.T) {
	c, server := newPipeConnectionNoHandshake()
	defer server.Close()

	go drainFrames(server, 3)

	ast := fakeMarshaler{raw: json.RawMessage(`"x"`)}
	opts := fakeMarshaler{raw: json.RawMessage(`{}`)}

	tok1, err := c.StartRequest(ast, opts)
	require.NoError(t, err)
	tok2, err := c.StartRequest(ast, opts)
	require.NoError(t, err)
	tok3, err := c.StartRequest(ast, opts)
	require.NoError(t, err)

	assert.Equal(t, Token(1), tok1)
	assert.Equal(t, Token(2), tok2)
	assert.Equal(t, Token(3), tok3)
}

func newPipeConnectionNoHandshake() (*RawConnection, net.Conn) {
	client, server := net.Pipe()
	c := &RawConnection{conn: client, nextToken: 1, writeBuf: make([]byte, 0, 64)}
	return c, server
}

func drainFrames(conn net.Conn, n int) {
	for i := 0; i < n; i++ {
		var header [12]byte
		if _, err := readFull(conn, header[:]); err != nil {
			return
		}
		size := binary.LittleEndian.Uint32(header[8:12])
		body := make([]byte, size)
		_, _ = readFull(conn, body)
	}
}

func TestStartRequestFrameLayoutMatchesStartQueryBody(t *testing.T) {
	c, server := newPipeConnectionNoHandshake()
	defer server.Close()

	done := make(chan []byte, 1)
	go func() {
		var header [12]byte
		_, _ = readFull(server, header[:])
		size := binary.LittleEndian.Uint32(header[8:12])
		body := make([]byte, size)
		_, _ = readFull(server, body)
		full := append(append([]byte{}, header[:]...), body...)
		done <- full
	}()

	ast := fakeMarshaler{raw: json.RawMessage(`"the-ast"`)}
	opts := fakeMarshaler{raw: json.RawMessage(`{"k":"v"}`)}
	token, err := c.StartRequest(ast, opts)
	require.NoError(t, err)
	assert.Equal(t, Token(1), token)

	frame := <-done
	gotToken := binary.BigEndian.Uint64(frame[:8])
	assert.Equal(t, uint64(1), gotToken)

	size := binary.LittleEndian.Uint32(frame[8:12])
	body := frame[12 : 12+int(size)]

	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 3)

	var queryType int
	require.NoError(t, json.Unmarshal(decoded[0], &queryType))
	assert.Equal(t, QueryStart, queryType)
	assert.JSONEq(t, `"the-ast"`, string(decoded[1]))
	assert.JSONEq(t, `{"k":"v"}`, string(decoded[2]))
}

func TestContinueRequestIsABareQueryTypeArray(t *testing.T) {
	c, server := newPipeConnectionNoHandshake()
	defer server.Close()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 15)
		_, _ = readFull(server, buf)
		done <- buf
	}()

	require.NoError(t, c.ContinueRequest(Token(7)))
	frame := <-done

	gotToken := binary.BigEndian.Uint64(frame[:8])
	assert.Equal(t, uint64(7), gotToken)
	size := binary.LittleEndian.Uint32(frame[8:12])
	assert.Equal(t, uint32(3), size)
	assert.Equal(t, "[2]", string(frame[12:15]))
}

func TestStopRequestIsABareQueryTypeArray(t *testing.T) {
	c, server := newPipeConnectionNoHandshake()
	defer server.Close()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 15)
		_, _ = readFull(server, buf)
		done <- buf
	}()

	require.NoError(t, c.StopRequest(Token(9)))
	frame := <-done
	assert.Equal(t, "[3]", string(frame[12:15]))
}

func TestRecvPrefixesBodyWithBigEndianSizeInAccumulator(t *testing.T) {
	c, server := newPipeConnectionNoHandshake()
	defer server.Close()

	body := []byte(`{"t":1,"r":["ok"]}`)
	go func() {
		var header [12]byte
		binary.BigEndian.PutUint64(header[:8], 42)
		binary.LittleEndian.PutUint32(header[8:12], uint32(len(body)))
		_, _ = server.Write(header[:])
		_, _ = server.Write(body)
	}()

	var acc []byte
	token, ok, err := c.Recv(WaitForDuration(time.Second), func(tok Token) *[]byte {
		return &acc
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Token(42), token)

	require.Len(t, acc, 4+len(body))
	gotSize := binary.BigEndian.Uint32(acc[:4])
	assert.Equal(t, uint32(len(body)), gotSize)
	assert.Equal(t, body, acc[4:])
}

func TestHandshakeSucceedsOnMagicResponse(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		var req [12]byte
		_, _ = readFull(server, req[:])
		_, _ = server.Write(handshakeSuccess[:])
	}()

	require.NoError(t, handshake(client))
}

func TestHandshakeFailsOnWrongMagic(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		var req [12]byte
		_, _ = readFull(server, req[:])
		_, _ = server.Write([]byte("NOPE\x00\x00\x00\x00"))
	}()

	require.Error(t, handshake(client))
}
