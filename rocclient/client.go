// Package rocclient implements the ROC Plus client façade: scoped
// connection lifecycle, single-flight request/response exchange, typed
// wrapper methods per opcode, streaming TLP polling, and cached
// configuration snapshots. Logging goes through rlog, errors are
// *rocerr.Error, and every exchange carries a github.com/rs/xid
// correlation ID for log correlation.
package rocclient

import (
	"context"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/rocplus/go-rocplus/rlog"
	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/rocpdu"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rocplus",
		Name:      "requests_total",
		Help:      "ROC Plus exchanges by opcode and outcome.",
	}, []string{"opcode", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rocplus",
		Name:      "request_duration_seconds",
		Help:      "ROC Plus exchange latency by opcode.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"opcode"})

	connectionState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "rocplus",
		Name:      "connection_state",
		Help:      "1 if the client holds an open connection, else 0.",
	}, []string{"host"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, connectionState)
}

// Client is a single-device ROC Plus façade. One value owns one TCP
// connection; concurrent callers may share a Client, but the single-flight
// guard rejects an Exchange that overlaps another with BusyAlready rather
// than queuing it.
type Client struct {
	cfg  Config
	addr wire.DeviceAddress
	log  rlog.Log
	reg  *tlp.Registry

	mu   sync.Mutex
	conn net.Conn
	busy bool

	snapshot snapshot
}

// snapshot holds the cached configuration bootstraps.
type snapshot struct {
	mu      sync.RWMutex
	io      *IODefinition
	opcodes *ConfigurableOpcodeTables
	history *HistoryDefinition
	system  *SystemConfig
}

// New builds a Client for the device described by cfg, using reg to
// resolve TLP schema lookups (pass tlp.DefaultRegistry() for the built-in
// seed, or a fuller registry supplied by the embedding application).
func New(cfg Config, reg *tlp.Registry) (*Client, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return &Client{
		cfg: cfg,
		addr: wire.DeviceAddress{
			RocAddress:  cfg.RocAddress,
			RocGroup:    cfg.RocGroup,
			HostAddress: cfg.HostAddress,
			HostGroup:   cfg.HostGroup,
		},
		log: rlog.New(),
		reg: reg,
	}, nil
}

// SetLogProvider swaps the logging backend.
func (c *Client) SetLogProvider(p rlog.LogProvider) { c.log.SetLogProvider(p) }

// LogMode toggles whether debug/warn/error logging is emitted at all.
func (c *Client) LogMode(enable bool) { c.log.LogMode(enable) }

// IsOpen reports whether the client currently holds a connection.
func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Open dials the device. Idempotent: calling Open on an already-open
// client is a no-op.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}
	addr := net.JoinHostPort(c.cfg.Host, portString(c.cfg.Port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.log.Error(logrus.Fields{"host": c.cfg.Host, "port": c.cfg.Port}, "connect failed: %v", err)
		if ctx.Err() != nil {
			return rocerr.Wrap(rocerr.ConnectTimeout, err)
		}
		return rocerr.Wrap(rocerr.ConnectFailed, err)
	}
	c.conn = conn
	connectionState.WithLabelValues(c.cfg.Host).Set(1)
	c.log.Debug(logrus.Fields{"host": c.cfg.Host, "port": c.cfg.Port}, "connection opened")
	return nil
}

// Close releases the connection. Idempotent: calling Close on an
// already-closed client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

// closeLocked tears down conn, if any. Callers must hold c.mu.
func (c *Client) closeLocked() error {
	if c.conn == nil {
		return nil
	}
	_ = c.conn.SetDeadline(time.Now().Add(c.cfg.CloseTimeout))
	err := c.conn.Close()
	c.conn = nil
	connectionState.WithLabelValues(c.cfg.Host).Set(0)
	c.log.Debug(logrus.Fields{"host": c.cfg.Host}, "connection closed")
	return err
}

// poisonsConnection reports whether err leaves conn in a state where
// reusing it would misframe the next exchange: a short/garbled frame, an
// unrecognized opcode, a timeout mid-read/write, or a peer-initiated
// close. The connection is closed so the next Exchange reconnects from a
// clean state instead of replaying desync onto a fresh request.
func poisonsConnection(err error) bool {
	switch rocerr.KindOf(err) {
	case rocerr.FrameTooShort, rocerr.CrcMismatch, rocerr.UnknownOpcode,
		rocerr.ReadTimeout, rocerr.WriteTimeout, rocerr.ClosedByPeer:
		return true
	default:
		return false
	}
}

// WithConnection opens the connection, runs fn, and guarantees Close on
// every exit path — success, error, or panic.
func (c *Client) WithConnection(ctx context.Context, fn func(*Client) error) (err error) {
	if err = c.Open(ctx); err != nil {
		return err
	}
	defer func() {
		closeErr := c.Close()
		if err == nil {
			err = closeErr
		}
	}()
	return fn(c)
}

// Exchange sends req and returns the decoded response body. Exactly one
// Exchange runs at a time per Client; a concurrent call returns
// BusyAlready immediately rather than queuing.
func (c *Client) Exchange(ctx context.Context, req rocpdu.RequestBody) (rocpdu.ResponseBody, error) {
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, rocerr.New(rocerr.ConnectFailed, "client is not open")
	}
	if c.busy {
		c.mu.Unlock()
		return nil, rocerr.ErrBusyAlready
	}
	c.busy = true
	conn := c.conn
	c.mu.Unlock()

	start := time.Now()
	corrID := xid.New().String()
	opcode := req.Opcode()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	resp, err := c.exchangeOn(conn, corrID, req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if poisonsConnection(err) {
			c.mu.Lock()
			if c.conn == conn {
				_ = c.closeLocked()
			}
			c.mu.Unlock()
		}
	}
	requestsTotal.WithLabelValues(opcodeLabel(opcode), outcome).Inc()
	requestDuration.WithLabelValues(opcodeLabel(opcode)).Observe(time.Since(start).Seconds())
	return resp, err
}

func (c *Client) exchangeOn(conn net.Conn, corrID string, req rocpdu.RequestBody) (rocpdu.ResponseBody, error) {
	frame, err := wire.EncodeRequest(c.addr, req.Opcode(), req.EncodeBody())
	if err != nil {
		return nil, err
	}

	c.log.Debug(logrus.Fields{"corr_id": corrID, "opcode": req.Opcode()}, "writing request")
	if err := conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return nil, rocerr.Wrap(rocerr.WriteTimeout, err)
	}
	if _, err := conn.Write(frame); err != nil {
		return nil, classifyWriteErr(err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
		return nil, rocerr.Wrap(rocerr.ReadTimeout, err)
	}
	raw, err := readFrame(conn)
	if err != nil {
		return nil, err
	}

	env, err := wire.DecodeResponse(raw)
	if err != nil {
		c.log.Warn(logrus.Fields{"corr_id": corrID}, "frame decode failed: %v", err)
		return nil, err
	}
	if len(env.Body) == 0 {
		return nil, rocerr.ErrEmptyResponse
	}
	c.log.Debug(logrus.Fields{"corr_id": corrID, "opcode": env.Opcode}, "response decoded")
	return rocpdu.Decode(env.Opcode, env.Body, req, c.reg)
}

// readFrame reads exactly one ROC Plus frame: the fixed 6-byte header,
// then the declared body length plus the 2-byte CRC trailer.
func readFrame(conn net.Conn) ([]byte, error) {
	header := make([]byte, wire.HeaderSize)
	if _, err := io.ReadFull(conn, header); err != nil {
		return nil, classifyReadErr(err)
	}
	remaining := int(header[5]) + wire.CRCSize
	rest := make([]byte, remaining)
	if _, err := io.ReadFull(conn, rest); err != nil {
		return nil, classifyReadErr(err)
	}
	return append(header, rest...), nil
}

func classifyReadErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return rocerr.Wrap(rocerr.ClosedByPeer, err)
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return rocerr.Wrap(rocerr.ReadTimeout, err)
	}
	return rocerr.Wrap(rocerr.ReadTimeout, err)
}

func classifyWriteErr(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return rocerr.Wrap(rocerr.WriteTimeout, err)
	}
	return rocerr.Wrap(rocerr.WriteTimeout, err)
}

func portString(p uint16) string {
	return strconv.Itoa(int(p))
}

func opcodeLabel(opcode uint8) string {
	return strconv.Itoa(int(opcode))
}
