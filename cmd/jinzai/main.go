// Package main is the Jinzai CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/jinzai/internal/cli"
	"github.com/hyperjump/jinzai/internal/config"
	"github.com/hyperjump/jinzai/internal/embedding"
	"github.com/hyperjump/jinzai/internal/extract"
	"github.com/hyperjump/jinzai/internal/intake"
	"github.com/hyperjump/jinzai/internal/models"
	"github.com/hyperjump/jinzai/internal/server"
	"github.com/hyperjump/jinzai/internal/storage"
	"github.com/hyperjump/jinzai/internal/store"
	"github.com/hyperjump/jinzai/internal/vector"
	"github.com/hyperjump/jinzai/internal/watcher"
	"github.com/hyperjump/jinzai/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// systemConfigPath is where packaged installs place their config. A var so
// tests can point it somewhere harmless.
var systemConfigPath = "/usr/local/etc/jinzai/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory is preferred (so running from the project dir picks up
// the project's config), then the system location; when neither exists the
// built-in defaults are used. Returns the config and the path actually loaded
// ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path != defaultConfigPath {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	candidates := []string{defaultConfigPath, systemConfigPath}
	if cwd, err := os.Getwd(); err == nil {
		candidates[0] = filepath.Join(cwd, "config.yaml")
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := config.Load(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}
	return config.Default(), "", nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "submit":
		runSubmit()
	case "search":
		runSearch()
	case "list":
		runList()
	case "delete":
		runDelete()
	case "clear":
		runClear()
	case "status":
		runStatus()
	case "config":
		runConfig()
	case "version", "--version", "-v":
		fmt.Printf("jinzai version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (drop folder events, store mutations, etc.)")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *ephemeral {
		cfg.Storage.Type = "memory"
	}
	debugMode := cfg.Logging.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if resolvedConfigPath == "" {
		resolvedConfigPath = "(built-in defaults)"
	}
	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("storage", cfg.Storage.Type),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(context.Background(), cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	svc := components.Intake
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Intake.Enabled {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		if cfg.Intake.DebounceMs > 0 {
			watchOpts = append(watchOpts, watcher.WithDebounce(time.Duration(cfg.Intake.DebounceMs)*time.Millisecond))
		}
		watchSvc := watcher.NewWatcher(
			cfg.Intake.DropDir,
			extract.SupportedExtensions(),
			func(path string) {
				if err := svc.SyncFile(context.Background(), path); err != nil {
					logger.Warn("drop folder sync failed", zap.String("path", path), zap.Error(err))
				}
			},
			func(path string) {
				if _, err := svc.RemoveFile(context.Background(), path); err != nil {
					logger.Warn("drop folder remove failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start drop folder watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(components.Store, svc, cfg, logger, version)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSubmit() {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: jinzai submit [flags] <file>...")
		os.Exit(1)
	}
	paths := fs.Args()

	if *serverURL != "" && serverReachable(*serverURL) {
		for _, path := range paths {
			if err := submitViaHTTP(*serverURL, path); err != nil {
				fmt.Fprintf(os.Stderr, "Submit failed for %s: %v\n", path, err)
				os.Exit(1)
			}
			fmt.Printf("Indexed: %s\n", filepath.Base(path))
		}
		return
	}

	_, components, logger := openComponents(*configPath, *ephemeral)
	defer logger.Sync()
	defer components.Close()

	ctx := context.Background()
	for _, path := range paths {
		if err := components.Intake.SubmitFile(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "Submit failed for %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Indexed: %s\n", filepath.Base(path))
	}
}

// printSearchUsage prints search subcommand usage and scoring hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: jinzai search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Matches are scored in [0, 1]; 1.0 is a perfect match. Results below the
min-score cutoff are dropped.
  • Use -top-k to control how many matches come back.
  • Use -min-score to trade recall for precision.
  • Use -format json or -format csv for machine-readable output.

Examples:
  jinzai search python backend engineer
  jinzai search "python backend engineer"        # same as above
  jinzai search -top-k 5 kubernetes
  jinzai search -min-score 0.6 senior golang
  jinzai search -format csv devops > matches.csv
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting (e.g. "python dev" vs python dev).
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "jinzai search \"query\"
// -top-k 5" would otherwise leave -top-k unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	topK := fs.Int("top-k", 0, "number of matches to return (0 = configured default)")
	minScore := fs.Float64("min-score", 0, "similarity cutoff in [0, 1] (0 = configured default)")
	formatName := fs.String("format", "text", "output format: text, json or csv")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	request := &models.SearchRequest{
		Query:    queryStr,
		TopK:     *topK,
		MinScore: *minScore,
	}
	if err := request.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid query: %v\n", err)
		os.Exit(1)
	}

	if *serverURL != "" && serverReachable(*serverURL) {
		response, err := searchViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, components, logger := openComponents(*configPath, *ephemeral)
	defer logger.Sync()
	defer components.Close()

	request.ApplyBounds(cfg.Search.DefaultTopK, cfg.Search.MaxTopK, cfg.Search.MinScore)
	ctx := context.Background()
	start := time.Now()
	emb, err := components.Intake.EmbedQuery(ctx, request.Query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	matches, err := components.Store.Search(ctx, emb, request.TopK, request.MinScore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if matches == nil {
		matches = []models.SearchMatch{}
	}
	response := &models.SearchResponse{
		Query:     request.Query,
		Total:     len(matches),
		Results:   matches,
		QueryTime: time.Since(start).Milliseconds(),
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	formatName := fs.String("format", "text", "output format: text, json or csv")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var response *models.ListResponse
	if *serverURL != "" && serverReachable(*serverURL) {
		response, err = listViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, components, logger := openComponents(*configPath, *ephemeral)
		defer logger.Sync()
		defer components.Close()

		records := components.Store.ListAll()
		response = &models.ListResponse{Total: len(records), Resumes: records}
	}

	if err := cli.WriteResumeList(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: jinzai delete [flags] <filename>")
		os.Exit(1)
	}
	filename := fs.Arg(0)

	var deleted bool
	var hint string
	var err error
	if *serverURL != "" && serverReachable(*serverURL) {
		deleted, hint, err = deleteViaHTTP(*serverURL, filename)
	} else {
		_, components, logger := openComponents(*configPath, *ephemeral)
		defer logger.Sync()
		defer components.Close()

		deleted, err = components.Store.DeleteResume(context.Background(), filename)
		if err == nil && !deleted {
			hint, _ = components.Store.SuggestFilename(filename)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Delete failed: %v\n", err)
		os.Exit(1)
	}
	if !deleted {
		if hint != "" {
			fmt.Fprintf(os.Stderr, "Resume not found: %s (did you mean %s?)\n", filename, hint)
		} else {
			fmt.Fprintf(os.Stderr, "Resume not found: %s\n", filename)
		}
		os.Exit(1)
	}
	fmt.Printf("Deleted: %s\n", filename)
}

func runClear() {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	if !*yes {
		fmt.Print("Remove ALL stored resumes? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	var removed int
	if *serverURL != "" && serverReachable(*serverURL) {
		var err error
		removed, err = clearViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Clear failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, components, logger := openComponents(*configPath, *ephemeral)
		defer logger.Sync()
		defer components.Close()

		removed = components.Store.Count()
		if err := components.Store.Clear(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Clear failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Removed %d resume(s)\n", removed)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL; direct storage is used when no server answers (empty = always direct)")
	formatName := fs.String("format", "text", "output format: text or json")
	ephemeral := fs.Bool("ephemeral", false, "use in-memory storage; nothing is persisted")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var status *models.StatusResponse
	if *serverURL != "" && serverReachable(*serverURL) {
		status, err = statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, components, logger := openComponents(*configPath, *ephemeral)
		defer logger.Sync()
		defer components.Close()

		status = &models.StatusResponse{
			Status:      "ok",
			ResumeCount: components.Store.Count(),
			IndexType:   components.Store.IndexType(),
			Embedder:    cfg.Embedding.Type,
			Storage:     cfg.Storage.Type,
			Version:     version,
		}
		if diskBytes, err := storage.DiskUsageBytes(components.Store.BackendPath()); err == nil {
			status.DiskUsageBytes = diskBytes
		}
	}

	if err := cli.WriteStatus(os.Stdout, status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runConfig() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: jinzai config init [flags]")
		os.Exit(1)
	}
	sub := os.Args[2]
	switch sub {
	case "init":
		fs := flag.NewFlagSet("config init", flag.ExitOnError)
		path := fs.String("path", defaultConfigPath, "where to write the config file")
		force := fs.Bool("force", false, "overwrite an existing file")
		_ = fs.Parse(os.Args[3:])

		if !*force {
			if _, err := os.Stat(*path); err == nil {
				fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", *path)
				os.Exit(1)
			}
		}
		if err := config.Save(*path, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *path)
	default:
		fmt.Printf("Unknown config subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// serverReachable reports whether a Jinzai server answers at baseURL. Data
// commands prefer the HTTP API so that a running server and a direct-storage
// process never contend for the same artifacts.
func serverReachable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func submitViaHTTP(serverURL, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	resp, err := http.Post(serverURL+"/api/v1/resumes", mw.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func searchViaHTTP(serverURL string, request *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func listViaHTTP(serverURL string) (*models.ListResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/resumes")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// deleteViaHTTP returns whether the resume existed; on a miss, hint carries
// the server's closest-filename suggestion, if any.
func deleteViaHTTP(serverURL, filename string) (deleted bool, hint string, err error) {
	req, err := http.NewRequest(http.MethodDelete,
		serverURL+"/api/v1/resumes/"+url.PathEscape(filename), nil)
	if err != nil {
		return false, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return true, "", nil
	case http.StatusNotFound:
		var body struct {
			Suggestion string `json:"suggestion"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return false, body.Suggestion, nil
	default:
		b, _ := io.ReadAll(resp.Body)
		return false, "", fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

func clearViaHTTP(serverURL string) (int, error) {
	req, err := http.NewRequest(http.MethodDelete, serverURL+"/api/v1/resumes", nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out struct {
		Removed int `json:"removed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return out.Removed, nil
}

func statusViaHTTP(serverURL string) (*models.StatusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var status models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// Components holds the initialized service graph.
type Components struct {
	Embedder embedding.Embedder
	Store    *store.Store
	Intake   *intake.Service
}

// Close releases the store (which owns the index and the storage backend)
// and then the embedder, which the store does not own.
func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

// initializeComponents builds the service graph from config: storage backend,
// embedder, vector index, store and intake pipeline. The embedder is never
// silently substituted; a store persisted with one model must not be reopened
// with another, or delete-triggered rebuilds would rewrite its vectors.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	backend, err := storage.NewBackend(cfg.Storage.Type, cfg.Storage.DataDir, cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	embedder, err := embedding.NewEmbedder(embedding.Options{
		Type:       cfg.Embedding.Type,
		ModelPath:  cfg.Embedding.ModelPath,
		Dimensions: cfg.Embedding.Dimensions,
		MaxTokens:  cfg.Embedding.MaxTokens,
		CacheSize:  cfg.Embedding.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	// Flat and FAISS are both exact over the same vectors, so the faster one
	// is picked automatically when compiled in.
	faissAvailable := vector.IsFAISSAvailable()
	indexType := string(vector.IndexTypeFlat)
	if faissAvailable {
		indexType = string(vector.IndexTypeFAISS)
	}
	index, err := vector.NewIndex(indexType, cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	if logger != nil {
		logger.Info("vector index initialized",
			zap.String("type", index.Type()),
			zap.Bool("faiss_available", faissAvailable))
	}

	storeOpts := []store.Option{}
	intakeOpts := []intake.Option{}
	if debug && logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(logger))
		intakeOpts = append(intakeOpts, intake.WithLogger(logger))
	}
	st, err := store.Open(ctx, index, backend, embedder, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	svc := intake.NewService(extract.NewExtractor(), embedder, st, intakeOpts...)

	return &Components{
		Embedder: embedder,
		Store:    st,
		Intake:   svc,
	}, nil
}

// openComponents loads config and brings up the service graph for commands
// that run without a server. Exits the process on failure. The caller owns
// components.Close and logger.Sync.
func openComponents(configPath string, ephemeral bool) (*config.Config, *Components, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if ephemeral {
		cfg.Storage.Type = "memory"
	}
	logger, err := utils.NewLogger(cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(context.Background(), cfg, logger, cfg.Logging.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return cfg, components, logger
}

func printUsage() {
	fmt.Println(`jinzai - Resume semantic search service

Usage:
  jinzai server [flags]             Start the HTTP server
  jinzai submit [flags] <file>...   Add resume files to the pool
  jinzai search [flags] <query>     Find resumes matching a description
  jinzai list [flags]               List stored resumes
  jinzai delete [flags] <filename>  Remove one resume
  jinzai clear [flags]              Remove all resumes
  jinzai status [flags]             Show pool, index and storage status
  jinzai config init [flags]        Write a starter config file
  jinzai version                    Show version
  jinzai help                       Show this help

Data commands (submit, search, list, delete, clear, status) talk to a running
server when one answers at -server, and open the storage directly otherwise.

Common Flags:
  -config string     Config file path (default: ./config.yaml, then /usr/local/etc/jinzai/config.yaml)
  -server string     Server URL (default: http://localhost:8080). Use -server "" to force direct storage.
  -ephemeral         Use in-memory storage; nothing is persisted

Server Flags:
  -debug             Enable debug logging (drop folder events, store mutations, etc.)

Search Flags:
  -top-k int         Number of matches to return (0 = configured default)
  -min-score float   Similarity cutoff in [0, 1] (0 = configured default)
  -format string     Output format: text, json or csv (default: text)

Clear Flags:
  -yes               Skip the confirmation prompt

Examples:
  jinzai server
  jinzai submit resume.pdf
  jinzai search python backend engineer
  jinzai search -top-k 5 -min-score 0.6 "senior golang"
  jinzai search -format csv devops > matches.csv
  jinzai list
  jinzai delete resume.pdf
  jinzai clear -yes
  jinzai status -format json
  jinzai config init`)
}
