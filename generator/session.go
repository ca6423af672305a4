package generator

import (
	"context"
	"errors"
	"sync"
	"time"

	"step_blog_generator/logger"
	"step_blog_generator/seo"
)

// Milestone is one progress notch of article generation. It is informational only.
type Milestone struct {
	Percent int    `json:"percent"`
	Phase   string `json:"phase"`
	Status  string `json:"status"`
}

// ProgressFunc receives milestones in order; it may be nil.
type ProgressFunc func(Milestone)

var (
	MilestoneRequestBuilt    = Milestone{Percent: 25, Phase: "request_built", Status: "🤖 記事構成を考えています..."}
	MilestoneCallIssued      = Milestone{Percent: 50, Phase: "llm_call_issued", Status: "✍️ 記事を執筆しています..."}
	MilestoneResponseArrived = Milestone{Percent: 75, Phase: "response_received", Status: "📝 記事を最終調整しています..."}
	MilestoneCommitted       = Milestone{Percent: 100, Phase: "state_committed", Status: "✅ 記事が完成しました！"}
)

// Session 持有一次会话的状态，并把用户操作串行化。
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state *SessionState
	agent *Agent
	log   *logger.Logger
}

// NewSession creates a session in the Empty stage.
func NewSession(id string, agent *Agent, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		state:     NewSessionState(),
		agent:     agent,
		log:       log.With("session_id", id),
	}
}

// GenerateTitles runs step 1. On any failure the state is untouched.
func (s *Session) GenerateTitles(ctx context.Context, keyword string) ([]TitleCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("generating titles", "keyword", keyword)
	candidates, err := s.agent.GenerateTitles(ctx, keyword)
	if err != nil {
		s.log.Warn("title generation failed", "error", err)
		return nil, err
	}
	if err := s.state.CompleteKeywords(keyword, candidates); err != nil {
		return nil, &GenerationError{Step: "title", Err: err}
	}
	s.log.Info("titles ready", "count", len(candidates))
	return candidates, nil
}

// SelectTitle runs step 2.
func (s *Session) SelectTitle(index int) (TitleCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chosen, err := s.state.SelectTitle(index)
	if err != nil {
		s.log.Warn("title selection rejected", "index", index, "error", err)
		return TitleCandidate{}, err
	}
	s.log.Info("title selected", "index", index, "title", chosen.Title)
	return chosen, nil
}

// PreviewRequest validates the step-3 form without calling the model.
func (s *Session) PreviewRequest(in ArticleInput) (ArticleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.CanGenerateArticle(); err != nil {
		return ArticleRequest{}, err
	}
	return BuildArticleRequest(in)
}

// GenerateArticle runs step 3: build the request, make one call, commit.
// Milestones are reported as each phase finishes.
func (s *Session) GenerateArticle(ctx context.Context, in ArticleInput, progress ProgressFunc) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := func(m Milestone) {
		s.log.Info("article progress", "percent", m.Percent, "phase", m.Phase)
		if progress != nil {
			progress(m)
		}
	}

	if err := s.state.CanGenerateArticle(); err != nil {
		return "", err
	}
	req, err := BuildArticleRequest(in)
	if err != nil {
		return "", err
	}
	report(MilestoneRequestBuilt)

	report(MilestoneCallIssued)
	article, err := s.agent.GenerateArticle(ctx, req)
	if err != nil {
		s.log.Warn("article generation failed", "error", err)
		return "", err
	}
	report(MilestoneResponseArrived)

	if err := s.state.CompleteArticle(req, article); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return "", err
		}
		return "", &GenerationError{Step: "article", Err: err}
	}
	report(MilestoneCommitted)
	return article, nil
}

// Metrics scores the current article against the selected title and SEO keywords.
// ok is false until an article exists.
func (s *Session) Metrics() (seo.Metrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Stage() < StageArticleGenerated {
		return seo.Metrics{}, false
	}
	return seo.Score(s.state.generatedArticle, s.state.selectedTitle, s.state.selectedKeywords), true
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reset()
	s.log.Info("session reset")
}

func (s *Session) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Snapshot()
}
