package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type registryParam struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

type registryNode struct {
	Class  string          `json:"class"`
	Params []registryParam `json:"params"`
}

// Move records one filemoved notification received by the fake registry.
type Move struct {
	Src string
	Dst string
}

// Registry is an in-process TVHeadend stand-in covering the two endpoints
// the pipeline touches: idnode/load and dvr/entry/filemoved.
type Registry struct {
	server *httptest.Server

	mu          sync.Mutex
	nodes       map[string]registryNode
	moves       []Move
	movedStatus int
}

// NewRegistry starts a fake registry that is torn down with the test.
func NewRegistry(t testing.TB) *Registry {
	t.Helper()

	registry := &Registry{
		nodes:       make(map[string]registryNode),
		movedStatus: http.StatusOK,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/idnode/load", registry.handleLoad)
	mux.HandleFunc("/api/dvr/entry/filemoved", registry.handleMoved)
	mux.HandleFunc("/api/serverinfo", registry.handleServerInfo)
	registry.server = httptest.NewServer(mux)
	t.Cleanup(registry.server.Close)
	return registry
}

// URL returns the registry base URL.
func (r *Registry) URL() string {
	return r.server.URL
}

// AddDVREntry registers a dvrentry node under the given identifier.
func (r *Registry) AddDVREntry(id, filename, title, subtitle, description, channelID string, start int64) {
	params := []registryParam{
		{ID: "filename", Value: filename},
		{ID: "disp_title", Value: title},
		{ID: "disp_subtitle", Value: subtitle},
		{ID: "disp_description", Value: description},
		{ID: "start", Value: start},
	}
	if channelID != "" {
		params = append(params, registryParam{ID: "channel", Value: channelID})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[id] = registryNode{Class: "dvrentry", Params: params}
}

// AddChannel registers a channel node under the given identifier.
func (r *Registry) AddChannel(id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[id] = registryNode{Class: "channel", Params: []registryParam{{ID: "name", Value: name}}}
}

// RemoveNode deletes a node, making subsequent lookups return no entries.
func (r *Registry) RemoveNode(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, id)
}

// SetFileMovedStatus overrides the HTTP status returned by the filemoved
// endpoint.
func (r *Registry) SetFileMovedStatus(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movedStatus = code
}

// Moves returns the filemoved notifications received so far.
func (r *Registry) Moves() []Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Move(nil), r.moves...)
}

func (r *Registry) handleLoad(w http.ResponseWriter, req *http.Request) {
	id := req.URL.Query().Get("uuid")

	r.mu.Lock()
	node, ok := r.nodes[id]
	r.mu.Unlock()

	entries := []registryNode{}
	if ok {
		entries = append(entries, node)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

func (r *Registry) handleServerInfo(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"sw_version": "4.3-2210", "api_version": 19, "name": "Tvheadend"})
}

func (r *Registry) handleMoved(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := req.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	r.mu.Lock()
	status := r.movedStatus
	if status >= 200 && status < 300 {
		r.moves = append(r.moves, Move{Src: req.PostForm.Get("src"), Dst: req.PostForm.Get("dst")})
	}
	r.mu.Unlock()

	w.WriteHeader(status)
}
