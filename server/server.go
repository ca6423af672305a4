package server

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"step_blog_generator/generator"
	"step_blog_generator/logger"
	"step_blog_generator/metrics"
)

//go:embed web
var embeddedStatic embed.FS

const maxBodyBytes = 1 << 20

type Server struct {
	agent    *generator.Agent
	rec      *metrics.Recorder
	log      *logger.Logger
	store    *sessionStore
	staticFS http.Handler
}

// sessionStore 按 id 保存会话；会话之间互不共享状态。
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return len(s.sessions)
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) delete(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return len(s.sessions), ok
}

// New builds the server. rec and log may be nil.
func New(agent *generator.Agent, rec *metrics.Recorder, log *logger.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}
	if log == nil {
		log = logger.Nop()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    agent,
		rec:      rec,
		log:      log,
		store:    newStore(),
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.rec.Handler())
	mux.HandleFunc("GET /api/examples", s.handleExamples)

	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.withSession(s.handleSessionGet))
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleSessionDelete)
	mux.HandleFunc("POST /api/sessions/{id}/titles", s.withSession(s.handleTitles))
	mux.HandleFunc("POST /api/sessions/{id}/select", s.withSession(s.handleSelect))
	mux.HandleFunc("POST /api/sessions/{id}/article", s.withSession(s.handleArticle))
	mux.HandleFunc("POST /api/sessions/{id}/article/preview", s.withSession(s.handleArticlePreview))
	mux.HandleFunc("GET /api/sessions/{id}/article.md", s.withSession(s.handleArticleDownload))
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.withSession(s.handleReset))

	mux.Handle("GET /", s.staticFS)
	return s.logMiddleware(mux)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *generator.Session)

func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.store.get(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, errorResp{Error: "session not found"})
			return
		}
		next(w, r, sess)
	}
}

// --- Helpers ---

func newSessionID() string {
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads an optional JSON body; an empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &generator.ValidationError{Field: "body", Msg: "invalid JSON body", Err: err}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		s.log.Debug("http request", "method", r.Method, "path", path, "status", sw.status, "duration", time.Since(start))
	})
}
