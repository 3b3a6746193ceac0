package usbrly

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

const (
	serialTimeout     = 5 * time.Second
	serialIdleTimeout = 60 * time.Second
)

// ClientHandler implements Transporter over a local serial port.
type ClientHandler struct {
	serialPort
}

// NewClientHandler allocates and initializes a ClientHandler with the
// board's fixed line parameters: 19200 baud, 8 data bits, 2 stop bits,
// no parity.
func NewClientHandler(address string) *ClientHandler {
	handler := &ClientHandler{}
	handler.Address = address
	handler.BaudRate = 19200
	handler.DataBits = 8
	handler.StopBits = 2
	handler.Parity = "N"
	handler.Timeout = serialTimeout
	handler.IdleTimeout = serialIdleTimeout
	return handler
}

// Send writes one request and reads the board's complete response for it.
// The number of bytes to read follows from the request opcode. The port
// must have been opened with Connect first.
func (h *ClientHandler) Send(request []byte) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.port == nil {
		return nil, ErrNotConnected
	}
	h.lastActivity = time.Now()
	h.startCloseTimer()

	h.logf("usbrly: sending % x", request)
	if _, err := h.port.Write(request); err != nil {
		return nil, err
	}
	response := make([]byte, responseLength(request[0]))
	if _, err := io.ReadFull(h.port, response); err != nil {
		return nil, err
	}
	h.logf("usbrly: received % x", response)
	return response, nil
}

// serialPort holds the line configuration and the open port.
type serialPort struct {
	serial.Config

	// Logger traces the raw bytes of every exchange when set.
	Logger *log.Logger
	// IdleTimeout closes the port after a period with no traffic.
	// Zero disables the idle close.
	IdleTimeout time.Duration

	mu           sync.Mutex
	port         io.ReadWriteCloser
	lastActivity time.Time
	closeTimer   *time.Timer
}

// Connect opens the serial port with the configured parameters.
func (p *serialPort) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.port == nil {
		port, err := serial.Open(&p.Config)
		if err != nil {
			return err
		}
		p.port = port
	}
	return nil
}

// Close releases the serial port.
func (p *serialPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.close()
}

func (p *serialPort) close() (err error) {
	if p.port != nil {
		err = p.port.Close()
		p.port = nil
	}
	return
}

func (p *serialPort) logf(format string, v ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, v...)
	}
}

func (p *serialPort) startCloseTimer() {
	if p.IdleTimeout <= 0 {
		return
	}
	if p.closeTimer == nil {
		p.closeTimer = time.AfterFunc(p.IdleTimeout, p.closeIdle)
	} else {
		p.closeTimer.Reset(p.IdleTimeout)
	}
}

// closeIdle closes the port if it has seen no traffic for IdleTimeout.
func (p *serialPort) closeIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.IdleTimeout <= 0 {
		return
	}
	if idle := time.Since(p.lastActivity); idle >= p.IdleTimeout {
		p.logf("usbrly: closing connection due to idle timeout: %v", idle)
		p.close()
	}
}
