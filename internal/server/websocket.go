package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Nodal-Works/isovist/pkg/analytics"
	"github.com/Nodal-Works/isovist/pkg/engine"
	"github.com/Nodal-Works/isovist/pkg/geo"
	"github.com/Nodal-Works/isovist/pkg/isovist"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The dev server is same-origin only in production; tests dial directly.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// clientMessage is one inbound WebSocket event. Type selects which fields are
// meaningful.
type clientMessage struct {
	// Type is one of "move", "look", "params", "follow", "stop_follow".
	Type    string          `json:"type"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Bearing float64         `json:"bearing"`
	Params  *isovist.Params `json:"params,omitempty"`
}

// serverMessage is one outbound WebSocket frame.
type serverMessage struct {
	Type   string         `json:"type"` // "result" or "error"
	Error  string         `json:"error,omitempty"`
	Result *engine.Result `json:"result,omitempty"`
}

// session is one live viewer connection. The engine is exclusively owned by
// the session loop goroutine; the reader goroutine only feeds decoded
// messages through the channel.
type session struct {
	conn   *websocket.Conn
	engine *engine.Engine
	events chan clientMessage
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	eng, err := engine.New(s.index, s.cfg.Params)
	if err != nil {
		// Params were validated in New; this only fires if the config was
		// mutated after construction.
		log.Printf("websocket session engine: %v", err)
		conn.Close()
		return
	}

	sess := &session{
		conn:   conn,
		engine: eng,
		events: make(chan clientMessage, 16),
	}
	go sess.readLoop()
	sess.run(s.tick, s.stats.RecordComputation)
}

// readLoop decodes inbound frames until the connection drops, then closes the
// event channel to stop the session loop.
func (sess *session) readLoop() {
	defer close(sess.events)
	for {
		var msg clientMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		sess.events <- msg
	}
}

// run drives the session: events mutate the engine immediately, the ticker
// advances it, and each non-nil result is pushed to the client. Any number of
// events between two ticks coalesce into a single computation.
func (sess *session) run(tick time.Duration, record func(seconds float64, stats analytics.VisibilityStats)) {
	defer sess.conn.Close()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sess.events:
			if !ok {
				return
			}
			sess.apply(msg)
		case <-ticker.C:
			start := time.Now()
			result := sess.engine.Tick()
			if result == nil {
				continue
			}
			record(time.Since(start).Seconds(), result.Stats)
			if err := sess.conn.WriteJSON(serverMessage{Type: "result", Result: result}); err != nil {
				log.Printf("websocket write: %v", err)
				return
			}
		}
	}
}

func (sess *session) apply(msg clientMessage) {
	switch msg.Type {
	case "move":
		sess.engine.MoveViewer(geo.Pt(msg.X, msg.Y))
	case "look":
		sess.engine.LookAt(msg.Bearing)
	case "params":
		if msg.Params == nil {
			sess.sendError("params message missing params object")
			return
		}
		if err := sess.engine.SetParams(*msg.Params); err != nil {
			sess.sendError(err.Error())
		}
	case "follow":
		sess.engine.SetFollowTarget(geo.Pt(msg.X, msg.Y))
	case "stop_follow":
		sess.engine.ClearFollowTarget()
	default:
		sess.sendError("unknown message type " + msg.Type)
	}
}

func (sess *session) sendError(text string) {
	if err := sess.conn.WriteJSON(serverMessage{Type: "error", Error: text}); err != nil {
		log.Printf("websocket write: %v", err)
	}
}
