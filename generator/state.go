package generator

import (
	"errors"
	"slices"
	"strings"
)

// Stage is how far a session has progressed. Each stage implies all earlier ones,
// so "article generated but no title selected" cannot be represented.
type Stage int

const (
	StageEmpty Stage = iota
	StageKeywordsReady
	StageTitleSelected
	StageArticleGenerated
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageKeywordsReady:
		return "keywords_ready"
	case StageTitleSelected:
		return "title_selected"
	case StageArticleGenerated:
		return "article_generated"
	default:
		return "invalid"
	}
}

// StepFlags is the three-flag view the display uses to decide which sections to show.
type StepFlags struct {
	Step1 bool `json:"step1"`
	Step2 bool `json:"step2"`
	Step3 bool `json:"step3"`
}

// SessionState is the single mutable aggregate of one session. Fields are only
// changed through the methods below; each either applies fully or not at all.
type SessionState struct {
	stage            Stage
	keyword          string
	titleOptions     []TitleCandidate
	selectedTitle    string
	selectedKeywords []string
	generatedArticle string
	tone             Tone
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

func (s *SessionState) Stage() Stage {
	return s.stage
}

func (s *SessionState) Steps() StepFlags {
	return StepFlags{
		Step1: s.stage >= StageKeywordsReady,
		Step2: s.stage >= StageTitleSelected,
		Step3: s.stage >= StageArticleGenerated,
	}
}

// CompleteKeywords stores a fresh set of title candidates (step 1).
// Regenerating titles later keeps an existing selection and article.
func (s *SessionState) CompleteKeywords(keyword string, options []TitleCandidate) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return &ValidationError{Field: "keyword", Msg: "キーワードを入力してください"}
	}
	if len(options) == 0 {
		return errors.New("no title candidates")
	}
	cloned := make([]TitleCandidate, len(options))
	for i, o := range options {
		if strings.TrimSpace(o.Title) == "" {
			return errors.New("title candidate with empty title")
		}
		cloned[i] = o.clone()
	}

	s.keyword = keyword
	s.titleOptions = cloned
	s.stage = max(s.stage, StageKeywordsReady)
	return nil
}

// SelectTitle copies candidate index into the selection (step 2). Selecting again
// overwrites the previous choice.
func (s *SessionState) SelectTitle(index int) (TitleCandidate, error) {
	if s.stage < StageKeywordsReady {
		return TitleCandidate{}, stepLocked("title selection")
	}
	if index < 0 || index >= len(s.titleOptions) {
		return TitleCandidate{}, &IndexError{Index: index, Len: len(s.titleOptions)}
	}
	chosen := s.titleOptions[index].clone()

	s.selectedTitle = chosen.Title
	s.selectedKeywords = chosen.SEOKeywords
	s.stage = max(s.stage, StageTitleSelected)
	return chosen.clone(), nil
}

// CanGenerateArticle reports whether step 3 is unlocked.
func (s *SessionState) CanGenerateArticle() error {
	if s.stage < StageTitleSelected {
		return stepLocked("article generation")
	}
	return nil
}

// CompleteArticle stores the article (step 3). The edited keyword, title and SEO
// keywords of req replace the step-2 selection.
func (s *SessionState) CompleteArticle(req ArticleRequest, article string) error {
	if err := s.CanGenerateArticle(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.MainKeyword) == "" {
		return &ValidationError{Field: "title", Msg: "メインキーワードとタイトルは必須です"}
	}
	if strings.TrimSpace(article) == "" {
		return errors.New("empty article")
	}

	s.generatedArticle = article
	s.keyword = req.MainKeyword
	s.selectedTitle = req.Title
	s.selectedKeywords = slices.Clone(req.SEOKeywords)
	s.tone = req.Tone
	s.stage = StageArticleGenerated
	return nil
}

// Reset returns the state to its freshly created form in a single assignment.
func (s *SessionState) Reset() {
	*s = SessionState{}
}

// StateSnapshot is a deep copy handed to the display.
type StateSnapshot struct {
	Stage            Stage            `json:"-"`
	StageName        string           `json:"stage"`
	StepCompleted    StepFlags        `json:"step_completed"`
	Keyword          string           `json:"keyword"`
	TitleOptions     []TitleCandidate `json:"title_options"`
	SelectedTitle    string           `json:"selected_title"`
	SelectedKeywords []string         `json:"selected_keywords"`
	GeneratedArticle string           `json:"generated_article"`
	Tone             Tone             `json:"tone,omitempty"`
}

func (s *SessionState) Snapshot() StateSnapshot {
	opts := make([]TitleCandidate, len(s.titleOptions))
	for i, o := range s.titleOptions {
		opts[i] = o.clone()
	}
	kws := slices.Clone(s.selectedKeywords)
	if kws == nil {
		kws = []string{}
	}
	return StateSnapshot{
		Stage:            s.stage,
		StageName:        s.stage.String(),
		StepCompleted:    s.Steps(),
		Keyword:          s.keyword,
		TitleOptions:     opts,
		SelectedTitle:    s.selectedTitle,
		SelectedKeywords: kws,
		GeneratedArticle: s.generatedArticle,
		Tone:             s.tone,
	}
}
