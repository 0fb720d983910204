package site

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/docsitehq/docsite/internal/routes"
	"github.com/docsitehq/docsite/internal/scrollspy"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The preview server binds localhost; origin checks add nothing.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMessage is the envelope for every websocket frame, both
// directions. Client to server: "hello" carries the page's route path,
// "scroll" carries element tops keyed by anchor id. Server to client:
// "active" names the anchor to highlight, "reload" asks for a refresh.
type liveMessage struct {
	Type   string             `json:"type"`
	Path   string             `json:"path,omitempty"`
	Tops   map[string]float64 `json:"tops,omitempty"`
	Anchor string             `json:"anchor,omitempty"`
}

// Hub tracks live preview sessions. Each connected page runs its own
// active-section tracker on the server, fed by scroll snapshots from the
// browser, so the highlight survives client-side hiccups and rebuilt
// pages pick up where they left off.
type Hub struct {
	table func() *routes.Table

	mu       sync.RWMutex
	sessions map[string]*session
	closed   bool
}

type session struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex

	// tracker and mounted are touched only by the session's read loop.
	tracker *scrollspy.Tracker
	mounted bool
}

// NewHub returns a hub that resolves paths against table(). The
// indirection lets watch rebuilds swap tables under running sessions.
func NewHub(table func() *routes.Table) *Hub {
	return &Hub{table: table, sessions: make(map[string]*session)}
}

// Sessions reports the number of connected sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ServeWS upgrades the connection and runs the session's read loop until
// the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	sess := &session{id: uuid.NewString(), conn: conn}
	if !h.register(sess) {
		_ = conn.Close()
		return
	}
	defer h.unregister(sess)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg liveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("live: session %s sent a malformed frame: %v", sess.id, err)
			continue
		}
		switch msg.Type {
		case "hello":
			h.startTracking(sess, msg.Path)
		case "scroll":
			h.observe(sess, msg.Tops)
		}
	}
}

func (h *Hub) startTracking(sess *session, path string) {
	route, ok := h.table().Match(path)
	if !ok {
		log.Printf("live: session %s announced unknown path %q", sess.id, path)
		return
	}

	if sess.tracker != nil {
		sess.tracker.Unmount()
	}
	t := scrollspy.NewTracker(route.AnchorIDs())
	t.OnChange = func(id string) {
		sess.send(liveMessage{Type: "active", Anchor: id})
	}
	t.OnMissing = func(id string) {
		log.Printf("live: %s lists anchor #%s but the page has no matching element", route.Path, id)
	}
	sess.tracker = t
	sess.mounted = false
	log.Printf("live: session %s watching %s (%d anchors)", sess.id, route.Path, len(route.Anchors))
}

func (h *Hub) observe(sess *session, tops map[string]float64) {
	if sess.tracker == nil {
		return
	}
	snap := scrollspy.Snapshot(tops)
	if !sess.mounted {
		sess.mounted = true
		sess.tracker.Mount(snap)
		return
	}
	sess.tracker.Observe(snap)
}

// BroadcastReload tells every session to refresh its page.
func (h *Hub) BroadcastReload() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.sessions) == 0 {
		return
	}
	log.Printf("live: broadcasting reload to %d session(s)", len(h.sessions))
	for _, sess := range h.sessions {
		sess.send(liveMessage{Type: "reload"})
	}
}

// Close rejects new sessions and closes existing connections. Each read
// loop notices, unregisters itself, and unmounts its tracker; the
// tracker field belongs to that goroutine, so Close leaves it alone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, sess := range h.sessions {
		_ = sess.conn.Close()
	}
}

func (h *Hub) register(sess *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[sess.id] = sess
	log.Printf("live: session %s connected (%d active)", sess.id, len(h.sessions))
	return true
}

func (h *Hub) unregister(sess *session) {
	h.mu.Lock()
	if _, ok := h.sessions[sess.id]; ok {
		delete(h.sessions, sess.id)
		log.Printf("live: session %s disconnected (%d active)", sess.id, len(h.sessions))
	}
	h.mu.Unlock()

	if sess.tracker != nil {
		sess.tracker.Unmount()
	}
	_ = sess.conn.Close()
}

func (s *session) send(msg liveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.WriteMessage(websocket.TextMessage, data)
}
