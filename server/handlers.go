package server

import (
	"errors"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"

	"step_blog_generator/generator"
	"step_blog_generator/render"
	"step_blog_generator/seo"
)

const digestRunes = 120

// --- Views ---

type sessionView struct {
	SessionID string                  `json:"session_id"`
	CreatedAt time.Time               `json:"created_at"`
	State     generator.StateSnapshot `json:"state"`
	// Form pre-fills step 3 once a title is selected.
	Form     *generator.ArticleInput `json:"form,omitempty"`
	Article  *articleView            `json:"article,omitempty"`
	Progress []generator.Milestone   `json:"progress,omitempty"`
}

type articleView struct {
	HTML           string      `json:"html"`
	Digest         string      `json:"digest"`
	Filename       string      `json:"filename"`
	Info           basicInfo   `json:"info"`
	Metrics        seo.Metrics `json:"metrics"`
	ReferenceScore int         `json:"reference_score"`
}

type basicInfo struct {
	CharCount       int    `json:"char_count"`
	MainKeyword     string `json:"main_keyword"`
	SEOKeywordCount int    `json:"seo_keyword_count"`
	Tone            string `json:"tone"`
}

type option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

type examplesResp struct {
	Keywords   []string `json:"keywords"`
	WordCounts []option `json:"word_counts"`
	Tones      []option `json:"tones"`
}

type previewResp struct {
	Request        generator.ArticleRequest `json:"request"`
	AllKeywords    []string                 `json:"all_keywords"`
	KeywordCount   int                      `json:"keyword_count"`
	WordCountLabel string                   `json:"word_count_label"`
	ToneLabel      string                   `json:"tone_label"`
}

type errorResp struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type titlesReq struct {
	Keyword string `json:"keyword"`
}

type selectReq struct {
	Index *int `json:"index"`
}

func (s *Server) view(sess *generator.Session, progress []generator.Milestone) (sessionView, error) {
	snap := sess.Snapshot()
	v := sessionView{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
		State:     snap,
		Progress:  progress,
	}
	if snap.StepCompleted.Step2 {
		form := generator.FormInput(snap)
		v.Form = &form
	}
	if snap.Stage == generator.StageArticleGenerated {
		html, err := render.MarkdownToHTML(snap.GeneratedArticle)
		if err != nil {
			return sessionView{}, err
		}
		tone := snap.Tone
		if tone == "" {
			tone = generator.DefaultTone
		}
		v.Article = &articleView{
			HTML:     html,
			Digest:   render.Digest(snap.GeneratedArticle, digestRunes),
			Filename: render.Filename(snap.SelectedTitle),
			Info: basicInfo{
				CharCount:       utf8.RuneCountInString(snap.GeneratedArticle),
				MainKeyword:     snap.Keyword,
				SEOKeywordCount: len(snap.SelectedKeywords),
				Tone:            tone.Label(),
			},
			Metrics:        seo.Score(snap.GeneratedArticle, snap.SelectedTitle, snap.SelectedKeywords),
			ReferenceScore: seo.ReferenceScore,
		}
	}
	return v, nil
}

func (s *Server) writeView(w http.ResponseWriter, status int, sess *generator.Session, progress []generator.Milestone) {
	v, err := s.view(sess, progress)
	if err != nil {
		s.log.Error("render session view failed", "session_id", sess.ID, "error", err)
		writeError(w, http.StatusInternalServerError, errorResp{Error: "render article failed"})
		return
	}
	writeJSONStatus(w, status, v)
}

// --- Errors ---

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		gErr *generator.GenerationError
		vErr *generator.ValidationError
		iErr *generator.IndexError
	)
	switch {
	case errors.Is(err, generator.ErrStepLocked):
		return http.StatusConflict
	case errors.As(err, &gErr):
		return http.StatusBadGateway
	case errors.As(err, &vErr), errors.As(err, &iErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) errorResp {
	resp := errorResp{Error: err.Error()}
	var vErr *generator.ValidationError
	if errors.As(err, &vErr) {
		resp.Error = vErr.Msg
		resp.Field = vErr.Field
	}
	var gErr *generator.GenerationError
	if errors.As(err, &gErr) {
		resp.ErrorType = generator.ErrorTypeOf(err).String()
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, body errorResp) {
	writeJSONStatus(w, status, body)
}

func (s *Server) fail(w http.ResponseWriter, sess *generator.Session, action string, err error) {
	status := statusFor(err)
	s.rec.ObserveAction(action, "error")
	s.log.Warn("action failed", "session_id", sess.ID, "action", action, "status", status, "error", err)
	writeError(w, status, errorBody(err))
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	resp := examplesResp{Keywords: generator.ExampleKeywords}
	for _, wc := range generator.WordCounts {
		resp.WordCounts = append(resp.WordCounts, option{Value: int(wc), Label: wc.Label()})
	}
	for _, t := range generator.Tones {
		resp.Tones = append(resp.Tones, option{Value: string(t), Label: t.Label()})
	}
	writeJSON(w, resp)
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, _ *http.Request) {
	id := newSessionID()
	sess := generator.NewSession(id, s.agent, s.log)
	n := s.store.set(id, sess)
	s.rec.SetActiveSessions(n)
	s.rec.ObserveAction("create", "ok")
	s.log.Info("session created", "session_id", id)
	s.writeView(w, http.StatusCreated, sess, nil)
}

func (s *Server) handleSessionGet(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	s.writeView(w, http.StatusOK, sess, nil)
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	n, ok := s.store.delete(id)
	if !ok {
		writeError(w, http.StatusNotFound, errorResp{Error: "session not found"})
		return
	}
	s.rec.SetActiveSessions(n)
	s.rec.ObserveAction("delete", "ok")
	s.log.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req titlesReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, sess, "titles", err)
		return
	}
	if _, err := sess.GenerateTitles(r.Context(), req.Keyword); err != nil {
		s.fail(w, sess, "titles", err)
		return
	}
	s.rec.ObserveAction("titles", "ok")
	s.writeView(w, http.StatusOK, sess, nil)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req selectReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, sess, "select", err)
		return
	}
	if req.Index == nil {
		s.fail(w, sess, "select", &generator.ValidationError{Field: "index", Msg: "タイトルを選択してください"})
		return
	}
	if _, err := sess.SelectTitle(*req.Index); err != nil {
		s.fail(w, sess, "select", err)
		return
	}
	s.rec.ObserveAction("select", "ok")
	s.writeView(w, http.StatusOK, sess, nil)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var in generator.ArticleInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, sess, "article", err)
		return
	}
	var progress []generator.Milestone
	if _, err := sess.GenerateArticle(r.Context(), in, func(m generator.Milestone) {
		progress = append(progress, m)
	}); err != nil {
		s.fail(w, sess, "article", err)
		return
	}
	s.rec.ObserveAction("article", "ok")
	if m, ok := sess.Metrics(); ok {
		s.rec.ObserveScore(m.Score)
		s.log.Info("article scored", "session_id", sess.ID, "score", m.Score, "verdict", m.Verdict)
	}
	s.writeView(w, http.StatusOK, sess, progress)
}

func (s *Server) handleArticlePreview(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var in generator.ArticleInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, sess, "preview", err)
		return
	}
	req, err := sess.PreviewRequest(in)
	if err != nil {
		s.fail(w, sess, "preview", err)
		return
	}
	all := req.AllKeywords()
	writeJSON(w, previewResp{
		Request:        req,
		AllKeywords:    all,
		KeywordCount:   len(all),
		WordCountLabel: req.WordCount.Label(),
		ToneLabel:      req.Tone.Label(),
	})
}

func (s *Server) handleArticleDownload(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	snap := sess.Snapshot()
	if snap.Stage < generator.StageArticleGenerated {
		writeError(w, http.StatusConflict, errorResp{Error: "記事がまだ生成されていません"})
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": render.Filename(snap.SelectedTitle),
	}))
	_, _ = w.Write([]byte(snap.GeneratedArticle))
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	sess.Reset()
	s.rec.ObserveAction("reset", "ok")
	s.writeView(w, http.StatusOK, sess, nil)
}
