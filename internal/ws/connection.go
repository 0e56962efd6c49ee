package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/desktop"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/shell"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
)

// Inbound is a client frame. Only the fields the type needs are read.
type Inbound struct {
	Type    string        `json:"type"`
	Intent  *shell.Intent `json:"intent,omitempty"`
	Command string        `json:"command,omitempty"`
	Path    string        `json:"path,omitempty"`
	Topic   string        `json:"topic,omitempty"`
}

const defaultTerminalPath = `C:\Users\User`

type connection struct {
	h  *Handler
	ws *websocket.Conn
	id string

	out  chan []byte
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup

	mu     sync.Mutex
	topics map[string]context.CancelFunc
}

func newConnection(h *Handler, ws *websocket.Conn, id string) *connection {
	return &connection{
		h:      h,
		ws:     ws,
		id:     id,
		out:    make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		topics: make(map[string]context.CancelFunc),
	}
}

// serve runs the connection until the client goes away. Every
// subscription it opened is released before it returns.
func (c *connection) serve(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer func() {
		cancel()
		c.close()
		c.wg.Wait()
		_ = c.ws.Close()
	}()

	c.wg.Add(1)
	go c.writeLoop()

	c.send(TypeWelcome, map[string]any{"connection_id": c.id})

	states, unsubscribe := c.h.shell.Subscribe(ctx)
	defer unsubscribe()
	c.wg.Add(1)
	go c.forwardStates(states)

	if c.h.device != nil {
		stopBattery := c.h.device.SubscribeBattery(func(b device.Battery) {
			c.send(TypeBattery, map[string]any{"battery": b})
		})
		defer stopBattery()
		stopOnline := c.h.device.SubscribeOnline(func(s device.OnlineStatus) {
			c.send(TypeNetwork, map[string]any{"online": s.Online})
		})
		defer stopOnline()
	}

	c.readLoop(ctx)
}

func (c *connection) readLoop(ctx context.Context) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.h.log.Debug("websocket read error", zap.String("connection_id", c.id), zap.Error(err))
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg Inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		c.record("in", inboundLabel(msg.Type))
		c.handle(ctx, msg)
	}
}

func (c *connection) handle(ctx context.Context, msg Inbound) {
	switch msg.Type {
	case TypeIntent:
		if msg.Intent == nil {
			c.sendError("intent is required")
			return
		}
		// The resulting state reaches the client through the subscription.
		if _, err := c.h.shell.Dispatch(ctx, *msg.Intent); err != nil {
			c.sendError(errorMessage(err))
		}
	case TypeTerminal:
		c.runTerminal(ctx, msg)
	case TypeSubscribe:
		c.subscribe(ctx, msg.Topic)
	case TypeUnsubscribe:
		c.unsubscribe(msg.Topic)
	case TypePing:
		c.send(TypePong, nil)
	default:
		c.sendError("unknown message type")
	}
}

func (c *connection) runTerminal(ctx context.Context, msg Inbound) {
	if c.h.terminal == nil {
		c.sendError("terminal unavailable")
		return
	}
	if c.h.shell.Locked() {
		c.sendError(errorMessage(shell.ErrLocked))
		return
	}
	path := msg.Path
	if path == "" {
		path = defaultTerminalPath
	}
	res := c.h.terminal.Execute(ctx, msg.Command, path)
	c.send(TypeTerminal, map[string]any{"result": res})
}

func (c *connection) subscribe(ctx context.Context, topic string) {
	var interval time.Duration
	var tick func()
	switch topic {
	case TopicClock:
		interval = c.h.clockInterval
		tick = func() {
			clock := desktop.NewClock(c.h.now())
			c.send(TypeClock, map[string]any{"time": clock.Time, "date": clock.Date})
		}
	case TopicPerf:
		interval = c.h.perfInterval
		tick = func() {
			c.send(TypePerf, map[string]any{"sample": c.h.shell.Performance()})
		}
	default:
		c.sendError("unknown topic")
		return
	}

	c.mu.Lock()
	if _, ok := c.topics[topic]; ok {
		c.mu.Unlock()
		return
	}
	tctx, cancel := context.WithCancel(ctx)
	c.topics[topic] = cancel
	c.mu.Unlock()

	tick()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-tctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
}

func (c *connection) unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.topics[topic]; ok {
		cancel()
		delete(c.topics, topic)
	}
}

func (c *connection) forwardStates(states <-chan shell.State) {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			c.send(TypeState, map[string]any{"state": st})
		}
	}
}

func (c *connection) writeLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case data := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.h.log.Debug("websocket write failed", zap.String("connection_id", c.id), zap.Error(err))
				c.close()
				_ = c.ws.Close()
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.close()
				_ = c.ws.Close()
				return
			}
		}
	}
}

// send queues a frame. It blocks while the buffer is full and gives up once
// the connection is closing.
func (c *connection) send(msgType string, fields map[string]any) {
	frame := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		frame[k] = v
	}
	frame["type"] = msgType
	frame["timestamp"] = c.h.now().Unix()

	data, err := sonic.Marshal(frame)
	if err != nil {
		c.h.log.Error("websocket encode failed", zap.String("type", msgType), zap.Error(err))
		return
	}

	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.out <- data:
		c.record("out", msgType)
	case <-c.done:
	}
}

func (c *connection) sendError(message string) {
	c.send(TypeError, map[string]any{"message": message})
}

func (c *connection) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *connection) record(direction, msgType string) {
	if c.h.metrics != nil {
		c.h.metrics.RecordWSMessage(direction, msgType)
	}
}

// inboundLabel keeps client-chosen types out of metric labels
func inboundLabel(msgType string) string {
	switch msgType {
	case TypeIntent, TypeTerminal, TypeSubscribe, TypeUnsubscribe, TypePing:
		return msgType
	default:
		return "unknown"
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, shell.ErrLocked):
		return "desktop is locked"
	default:
		return err.Error()
	}
}
