package rocclient

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/rocpdu"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

// fakeDevice accepts a single connection and replies to each request with
// a canned clock response, echoing the swapped host/roc address order a
// real ROC Plus device uses.
func fakeDevice(t *testing.T) (host string, port uint16, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NilError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			header := make([]byte, wire.HeaderSize)
			if _, err := readFull(conn, header); err != nil {
				return
			}
			bodyLen := int(header[5])
			rest := make([]byte, bodyLen+wire.CRCSize)
			if _, err := readFull(conn, rest); err != nil {
				return
			}
			body := []byte{30, 15, 10, 1, 6, 0xE8, 0x07, 3}
			resp := []byte{header[2], header[3], header[0], header[1], header[4], byte(len(body))}
			resp = append(resp, body...)
			lsb, msb := wire.CRCBytes(resp)
			resp = append(resp, lsb, msb)
			if _, err := conn.Write(resp); err != nil {
				return
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", uint16(addr.Port), func() { ln.Close() }
}

// corruptFrameDevice accepts a single connection and replies to every
// request with a frame whose CRC trailer doesn't match its body.
func corruptFrameDevice(t *testing.T) (host string, port uint16, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NilError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		header := make([]byte, wire.HeaderSize)
		if _, err := readFull(conn, header); err != nil {
			return
		}
		bodyLen := int(header[5])
		rest := make([]byte, bodyLen+wire.CRCSize)
		if _, err := readFull(conn, rest); err != nil {
			return
		}
		body := []byte{30, 15, 10, 1, 6, 0xE8, 0x07, 3}
		resp := []byte{header[2], header[3], header[0], header[1], header[4], byte(len(body))}
		resp = append(resp, body...)
		resp = append(resp, 0xAA, 0xAA) // wrong CRC
		_, _ = conn.Write(resp)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", uint16(addr.Port), func() { ln.Close() }
}

// silentDevice accepts a single connection and never replies, forcing the
// client's read deadline to fire.
func silentDevice(t *testing.T) (host string, port uint16, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NilError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		header := make([]byte, wire.HeaderSize)
		_, _ = readFull(conn, header)
		select {}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", uint16(addr.Port), func() { ln.Close() }
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func newTestClient(t *testing.T, host string, port uint16) *Client {
	t.Helper()
	cfg := DefaultConfig(host, port, 1, 0)
	cfg.ConnectTimeout = time.Second
	cfg.ReadTimeout = time.Second
	cfg.WriteTimeout = time.Second
	c, err := New(cfg, tlp.DefaultRegistry())
	assert.NilError(t, err)
	return c
}

func TestClientOpenExchangeClose(t *testing.T) {
	host, port, stop := fakeDevice(t)
	defer stop()
	c := newTestClient(t, host, port)

	assert.Assert(t, !c.IsOpen())
	assert.NilError(t, c.Open(context.Background()))
	assert.Assert(t, c.IsOpen())
	// Open is idempotent
	assert.NilError(t, c.Open(context.Background()))

	resp, err := c.Exchange(context.Background(), rocpdu.ReadClockRequest{})
	assert.NilError(t, err)
	cr, ok := resp.(rocpdu.ReadClockResponse)
	assert.Assert(t, ok)
	assert.Equal(t, cr.Weekday, uint8(3))

	assert.NilError(t, c.Close())
	assert.Assert(t, !c.IsOpen())
	// Close is idempotent
	assert.NilError(t, c.Close())
}

func TestClientExchangeWithoutOpenFails(t *testing.T) {
	c := newTestClient(t, "127.0.0.1", 1)
	_, err := c.Exchange(context.Background(), rocpdu.ReadClockRequest{})
	assert.Equal(t, rocerr.KindOf(err), rocerr.ConnectFailed)
}

func TestClientExchangeBusyAlready(t *testing.T) {
	host, port, stop := fakeDevice(t)
	defer stop()
	c := newTestClient(t, host, port)
	assert.NilError(t, c.Open(context.Background()))
	defer c.Close()

	c.mu.Lock()
	c.busy = true
	c.mu.Unlock()

	_, err := c.Exchange(context.Background(), rocpdu.ReadClockRequest{})
	assert.ErrorIs(t, err, rocerr.ErrBusyAlready)
}

func TestClientWithConnectionClosesOnSuccessAndError(t *testing.T) {
	host, port, stop := fakeDevice(t)
	defer stop()
	c := newTestClient(t, host, port)

	err := c.WithConnection(context.Background(), func(cl *Client) error {
		assert.Assert(t, cl.IsOpen())
		return nil
	})
	assert.NilError(t, err)
	assert.Assert(t, !c.IsOpen())

	sentinel := rocerr.New(rocerr.UnexpectedResponse, "boom")
	err = c.WithConnection(context.Background(), func(cl *Client) error {
		return sentinel
	})
	assert.Assert(t, err == error(sentinel))
	assert.Assert(t, !c.IsOpen())
}

func TestClientExchangeClosesConnectionOnCrcMismatch(t *testing.T) {
	host, port, stop := corruptFrameDevice(t)
	defer stop()
	c := newTestClient(t, host, port)
	assert.NilError(t, c.Open(context.Background()))

	_, err := c.Exchange(context.Background(), rocpdu.ReadClockRequest{})
	assert.Equal(t, rocerr.KindOf(err), rocerr.CrcMismatch)
	assert.Assert(t, !c.IsOpen())
}

func TestClientExchangeClosesConnectionOnReadTimeout(t *testing.T) {
	host, port, stop := silentDevice(t)
	defer stop()
	c := newTestClient(t, host, port)
	c.cfg.ReadTimeout = 50 * time.Millisecond
	assert.NilError(t, c.Open(context.Background()))

	_, err := c.Exchange(context.Background(), rocpdu.ReadClockRequest{})
	assert.Equal(t, rocerr.KindOf(err), rocerr.ReadTimeout)
	assert.Assert(t, !c.IsOpen())
}

func TestOpcodeLabelAndPortString(t *testing.T) {
	assert.Equal(t, opcodeLabel(7), "7")
	assert.Equal(t, portString(4000), strconv.Itoa(4000))
}
