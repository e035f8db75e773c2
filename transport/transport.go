// Package transport drives a push codec.DecodeState/EncodeState pair
// over a non-blocking TCP connection managed by github.com/lesismal/nbio,
// the same library and Gopher/OnOpen wiring the teacher's
// gate/listener.go and gate/nb_conn.go used for its actor-framework
// gate, with OnData in place of the teacher's OnRead. Unlike the teacher, which bridges nbio's edge-triggered reads
// into an actor mailbox (gate/nb_conn.go's onRead/readBuf pair
// assembling length-prefixed frames), each connection here pushes
// bytes straight into a codec.DecodeState as they arrive — there is
// no intermediate framing layer because the push codec already knows
// how to resume mid-message across arbitrary chunk boundaries.
package transport

import (
	"sync"
	"unsafe"

	"github.com/lesismal/nbio"
	"github.com/pkg/errors"

	"github.com/tablecodec/pbcore/codec"
	"github.com/tablecodec/pbcore/descriptor"
	"github.com/tablecodec/pbcore/log"
)

// Handler is invoked once a connection's message has been fully
// decoded (DecodeState.Finish succeeded). Instance is only valid for
// the duration of the call; copy out of it before returning if the
// handler needs the data afterward.
type Handler func(conn *Conn, decoded Message)

// Message pairs a decoded instance with the table that describes it,
// since a Conn's decode target is fixed per-server but callers still
// need both to read fields back out.
type Message struct {
	Table    *descriptor.Table
	Instance unsafe.Pointer
}

// Server listens for TCP connections and feeds every byte read on
// each connection into a fresh codec.DecodeState for tbl, invoking
// onMessage whenever a decode completes.
type Server struct {
	gopher *nbio.Gopher
	tbl    *descriptor.Table
	onMsg  Handler

	mu    sync.Mutex
	conns map[*nbio.Conn]*Conn
}

// Conn wraps one accepted nbio connection plus the decode/encode
// state pbcore threads through it.
type Conn struct {
	raw     *nbio.Conn
	decoder *decoder
}

// NewServer configures (but does not start) a Server listening on
// addr, decoding every connection's byte stream against tbl.
func NewServer(name, addr string, tbl *descriptor.Table, onMessage Handler) *Server {
	s := &Server{
		tbl:   tbl,
		onMsg: onMessage,
		conns: make(map[*nbio.Conn]*Conn),
	}
	g := nbio.NewGopher(nbio.Config{
		Name:           name,
		Network:        "tcp",
		Addrs:          []string{addr},
		ReadBufferSize: 4096,
	})
	g.OnOpen(func(c *nbio.Conn) {
		conn := &Conn{raw: c, decoder: newDecoder(tbl)}
		c.SetSession(conn)
		s.mu.Lock()
		s.conns[c] = conn
		s.mu.Unlock()
	})
	g.OnClose(func(c *nbio.Conn, err error) {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
	})
	g.OnData(func(c *nbio.Conn, data []byte) {
		conn, _ := c.Session().(*Conn)
		if conn == nil {
			return
		}
		if err := conn.decoder.push(data); err != nil {
			log.Warn("transport: decode error, closing connection")
			c.Close()
			return
		}
		if conn.decoder.finished() {
			msg := Message{Table: tbl, Instance: conn.decoder.instance()}
			onMessage(conn, msg)
			conn.decoder = newDecoder(tbl)
		}
	})
	s.gopher = g
	return s
}

// Start begins accepting connections; it does not block.
func (s *Server) Start() error {
	if err := s.gopher.Start(); err != nil {
		return errors.Wrap(err, "transport: start")
	}
	return nil
}

// Stop closes the listener and every open connection.
func (s *Server) Stop() {
	s.gopher.Stop()
}

// Send encodes inst against tbl and writes it to the connection,
// draining codec.EncodeState through an nbioSink until done —
// nbio.Conn.Write already queues and flushes asynchronously under
// backpressure, so one EncodeState pass suffices.
func (c *Conn) Send(tbl *descriptor.Table, inst unsafe.Pointer) error {
	e := codec.NewEncodeState(tbl, inst)
	sink := nbioSink{conn: c.raw}
	for !e.Done() {
		if err := e.PushTo(sink); err != nil {
			return errors.Wrap(err, "transport: send")
		}
	}
	return nil
}

// RemoteAddr reports the peer address, for logging at call sites
// (the codec's own layers never log, per the teacher's convention of
// keeping hot paths silent).
func (c *Conn) RemoteAddr() string {
	if c.raw == nil {
		return ""
	}
	return c.raw.RemoteAddr().String()
}

type nbioSink struct {
	conn *nbio.Conn
}

func (s nbioSink) PushBytes(buf []byte) (codec.WriteResult, error) {
	n, err := s.conn.Write(buf)
	if err != nil {
		return codec.WriteResult{N: n}, errors.Wrap(err, "nbio write")
	}
	return codec.WriteResult{N: n}, nil
}
