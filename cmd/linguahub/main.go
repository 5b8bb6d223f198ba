// Command linguahub translates forum content files through the LinguaHub API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forumkit/linguahub"
	"github.com/forumkit/linguahub/cache"
	"github.com/forumkit/linguahub/config"
	"github.com/forumkit/linguahub/processor"
	"github.com/forumkit/linguahub/provider"
)

var (
	flagConfig    string
	flagTarget    string
	flagType      string
	flagOutput    string
	flagCacheFile string
	flagLocaleMap string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linguahub",
		Short:         "Translate forum content through the LinguaHub API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")

	translate := &cobra.Command{
		Use:   "translate [file]",
		Short: "Translate an HTML or markdown file (stdin when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTranslate,
	}
	translate.Flags().StringVar(&flagTarget, "to", "", "target locale (e.g. es_ES, ja_JP)")
	translate.Flags().StringVar(&flagType, "type", "html", "content type: html or markdown")
	translate.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	translate.Flags().StringVar(&flagCacheFile, "cache-file", "", "translation cache snapshot to load and save")
	translate.Flags().StringVar(&flagLocaleMap, "locale-map", "", "YAML file with locale to vendor code overrides")
	_ = translate.MarkFlagRequired("to")

	detect := &cobra.Command{
		Use:   "detect [file]",
		Short: "Detect the language of a file (stdin when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDetect,
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, built %s)\n",
				linguahub.Name, linguahub.FullVersion(), linguahub.GitCommit, linguahub.BuildDate)
		},
	}

	root.AddCommand(translate, detect, version)
	return root
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	content, err := readInput(args)
	if err != nil {
		return err
	}

	contentCache, snapshot, err := buildCache(cfg)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, contentCache, logger)
	if err != nil {
		return err
	}

	result, err := engine.Translate(cmd.Context(), content, flagType, flagTarget)
	if err != nil {
		return err
	}

	logger.Info("translated",
		zap.String("source", result.SourceLang),
		zap.String("target", result.TargetLang),
		zap.Int("fragments", result.FragmentCount),
		zap.Int("batches", result.BatchCount),
		zap.Int("fallback_batches", result.FallbackBatches),
		zap.Bool("cached", result.Cached),
	)

	if snapshot != nil {
		if err := saveSnapshot(snapshot); err != nil {
			logger.Warn("cache snapshot save failed", zap.Error(err))
		}
	}

	return writeOutput(result.Content)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	content, err := readInput(args)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, nil, logger)
	if err != nil {
		return err
	}

	detected, err := engine.DetectLanguage(cmd.Context(), linguahub.Content{Cooked: content})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), detected)
	return nil
}

// buildEngine wires the vendor client, optional AI fallback, rate limiting,
// and content processors into a translator.
func buildEngine(cfg config.Config, contentCache linguahub.Cache, logger *zap.Logger) (*linguahub.Translator, error) {
	tokenCache, err := buildTokenCache(cfg)
	if err != nil {
		return nil, err
	}

	hub := provider.NewHub(provider.HubConfig{
		Tenant:   cfg.Hub.Tenant,
		Project:  cfg.Hub.Project,
		BaseURL:  cfg.Hub.BaseURL,
		TokenTTL: cfg.Cache.TokenTTL,
		Timeout:  cfg.Hub.Timeout,
		MaxConns: cfg.Hub.MaxConns,
	}, tokenCache, logger)

	var backend linguahub.BatchTranslator = hub
	if cfg.OpenAI.Enabled {
		backend = provider.NewCascade(hub, provider.NewOpenAI(provider.OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}))
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		backend = linguahub.NewRateLimitedTranslator(backend, linguahub.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		})
	}

	opts := []linguahub.Option{
		linguahub.WithProcessor(processor.NewHTMLProcessor()),
		linguahub.WithProcessor(processor.NewMarkdownProcessor()),
		linguahub.WithBatchLimit(cfg.Batch.Limit),
		linguahub.WithCacheTTL(cfg.Cache.ContentTTL),
		linguahub.WithLogger(logger),
	}
	if contentCache != nil {
		opts = append(opts, linguahub.WithCache(contentCache))
	}

	if flagLocaleMap != "" {
		f, err := os.Open(flagLocaleMap)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		overrides, err := linguahub.LoadLocaleOverrides(f)
		if err != nil {
			return nil, err
		}
		opts = append(opts, linguahub.WithLocaleOverrides(overrides))
	}

	return linguahub.New(backend, hub, opts...), nil
}

// cacheSnapshot tracks a file-backed memory cache across a run.
type cacheSnapshot struct {
	path   string
	memory *cache.Memory
	ttl    time.Duration
}

// buildCache returns the content cache per config, plus snapshot state when
// a cache file is in play.
func buildCache(cfg config.Config) (linguahub.Cache, *cacheSnapshot, error) {
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedis(cache.RedisConfig{URL: cfg.Cache.RedisURL})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting redis cache: %w", err)
		}
		return redisCache, nil, nil
	}

	memory := cache.NewMemory()
	if flagCacheFile == "" {
		return memory, nil, nil
	}

	snap := &cacheSnapshot{path: flagCacheFile, memory: memory, ttl: cfg.Cache.ContentTTL}
	if f, err := os.Open(flagCacheFile); err == nil {
		defer f.Close()
		if _, err := cache.ReadSnapshot(f, memory, snap.ttl); err != nil {
			return nil, nil, err
		}
	}
	return memory, snap, nil
}

// buildTokenCache returns the token cache per config. Redis keeps the token
// shared across workers; memory confines it to this process.
func buildTokenCache(cfg config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedis(cache.RedisConfig{URL: cfg.Cache.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("connecting redis token cache: %w", err)
		}
		return redisCache, nil
	}
	return cache.NewMemory(), nil
}

func saveSnapshot(snap *cacheSnapshot) error {
	f, err := os.Create(snap.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return cache.WriteSnapshot(f, snap.memory, map[string]string{
		"tool": linguahub.UserAgent(),
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(content string) error {
	if flagOutput == "" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	return os.WriteFile(flagOutput, []byte(content), 0o644)
}
