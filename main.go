package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chassis "github.com/ai8future/chassis-go/v5"

	"step_blog_generator/config"
	"step_blog_generator/generator"
	"step_blog_generator/logger"
	"step_blog_generator/metrics"
	"step_blog_generator/server"
)

var verbose bool

func main() {
	chassis.RequireMajor(5)

	configPath := flag.String("config", config.DefaultPath, "path to config.json or config.yaml")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	keyword := flag.String("keyword", "", "terminal mode: main keyword to generate an article for")
	pick := flag.Int("pick", 0, "terminal mode: index of the title candidate to use")
	words := flag.Int("words", int(generator.DefaultWordCount), "terminal mode: target length (1500, 2500 or 3500)")
	tone := flag.String("tone", string(generator.DefaultTone), "terminal mode: readable, expert or casual")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	configGiven := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configGiven = true
		}
	})

	cfg, err := config.Load(*configPath, configGiven)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode, verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	rec := metrics.NewRecorder()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := buildLLM(ctx, cfg, rec, log)
	if err != nil {
		log.Error("build llm client failed", "error", err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(llm, modelSettings(cfg))
	if err != nil {
		log.Error("build agent failed", "error", err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		srv, err := server.New(agent, rec, log)
		if err != nil {
			log.Error("build server failed", "error", err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if err := runServer(ctx, listen, srv.Routes(), log); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	if *keyword == "" {
		fmt.Fprintln(os.Stderr, "--serve or --keyword is required")
		os.Exit(1)
	}
	in := generator.ArticleInput{WordCount: *words, Tone: *tone}
	if err := runOnce(ctx, agent, *keyword, *pick, in, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, listen string, h http.Handler, log *logger.Logger) error {
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web server", "addr", listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// runOnce drives the three steps for one keyword and prints the article with its SEO metrics.
func runOnce(ctx context.Context, agent *generator.Agent, keyword string, pick int, in generator.ArticleInput, log *logger.Logger) error {
	sess := generator.NewSession("cli", agent, log)

	titles, err := sess.GenerateTitles(ctx, keyword)
	if err != nil {
		return err
	}
	for i, t := range titles {
		fmt.Fprintf(os.Stderr, "[%d] %s  (%v)\n", i, t.Title, t.SEOKeywords)
	}
	if _, err := sess.SelectTitle(pick); err != nil {
		return err
	}

	form := generator.FormInput(sess.Snapshot())
	form.WordCount = in.WordCount
	form.Tone = in.Tone
	article, err := sess.GenerateArticle(ctx, form, func(m generator.Milestone) {
		fmt.Fprintf(os.Stderr, "%3d%% %s\n", m.Percent, m.Status)
	})
	if err != nil {
		return err
	}
	fmt.Println(article)

	if m, ok := sess.Metrics(); ok {
		fmt.Fprintf(os.Stderr, "\nSEO score: %d/100 (%s)\n", m.Score, m.Verdict)
		fmt.Fprintf(os.Stderr, "length=%d density=%.2f%% h2=%d h3=%d title=%d\n",
			m.ArticleLength, m.KeywordDensity, m.H2Count, m.H3Count, m.TitleLength)
		for _, kc := range m.Keywords {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", kc.Keyword, kc.Count)
		}
	}
	return nil
}

func modelSettings(cfg config.Config) generator.ModelSettings {
	return generator.ModelSettings{
		TitleModel:       cfg.LLM.TitleModel,
		ArticleModel:     cfg.LLM.ArticleModel,
		TitleMaxTokens:   cfg.LLM.TitleMaxTokens,
		ArticleMaxTokens: cfg.LLM.ArticleMaxTokens,
		Temperature:      cfg.LLM.Temperature,
	}
}

func buildLLM(ctx context.Context, cfg config.Config, rec *metrics.Recorder, log *logger.Logger) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}

	var (
		client generator.LLMClient
		err    error
	)
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI, config.ProviderDeepSeek:
		// DeepSeek 提供 OpenAI 兼容接口，base_url 已在配置校验中要求。
		client, err = generator.NewOpenAILLMFromConfig(settings)
	case config.ProviderAnthropic:
		client, err = generator.NewAnthropicLLMFromConfig(settings)
	case config.ProviderGemini:
		client, err = generator.NewGeminiLLMFromConfig(ctx, settings)
	case config.ProviderOllama:
		client, err = generator.NewOllamaLLMFromConfig(settings)
	case config.ProviderMock:
		client = generator.MockLLM{}
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	tokens, err := generator.NewTokenCounter()
	if err != nil {
		log.Warn("token counter unavailable, using character estimates", "error", err)
		tokens = nil
	}
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	return generator.NewInstrumentedLLM(client, cfg.LLM.Provider, timeout, tokens, rec, log), nil
}
