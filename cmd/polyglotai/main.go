// Command polyglotai prepares multilingual document packs for
// retrieval: extract sections from raw text, chunk and filter them,
// index the survivors into Qdrant, and serve a search API over the
// result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"polyglotai/internal/config"
	"polyglotai/internal/handlers"
	"polyglotai/internal/http"
	"polyglotai/internal/indexer"
	"polyglotai/internal/llm"
	"polyglotai/internal/pipeline"
	"polyglotai/internal/record"
	"polyglotai/internal/sections"
	"polyglotai/internal/storage"
	"polyglotai/internal/textnorm"
	"polyglotai/internal/vectorstore"
)

const usage = `usage: polyglotai <command> [flags]

commands:
  extract   slice a raw text or markdown document into section rows
  chunk     turn section rows into filtered, deduplicated chunks
  index     embed stored chunks and upsert them into Qdrant
  serve     run the search API
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()

	switch os.Args[1] {
	case "extract":
		err = runExtract(ctx, cfg, os.Args[2:])
	case "chunk":
		err = runChunk(ctx, cfg, os.Args[2:])
	case "index":
		err = runIndex(ctx, cfg, os.Args[2:])
	case "serve":
		err = runServe(ctx, cfg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

// runExtract slices one document into section rows, one JSONL row per
// section, ready for the chunk command.
func runExtract(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	input := fs.String("input", "", "input document (default stdin)")
	output := fs.String("output", "", "output section rows JSONL (default stdout)")
	packID := fs.String("pack", "", "pack ID for the document (required)")
	language := fs.String("language", "", "document language: ar, en or fr (default inferred from pack ID)")
	book := fs.String("book", "", "book title stored on each row")
	format := fs.String("format", "text", "input format: text or markdown")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *packID == "" {
		return fmt.Errorf("-pack is required")
	}
	lang := *language
	if lang == "" {
		lang = record.InferLanguage(*packID, "")
	}
	if !record.KnownLanguage(lang) {
		return fmt.Errorf("cannot determine language for pack %q, pass -language", *packID)
	}

	in, closeIn, err := openInput(*input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer closeOut()

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	text := textnorm.Preclean(string(raw))

	var secs []sections.Section
	switch *format {
	case "markdown":
		secs = sections.NewMarkdownSlicer().Slice([]byte(text))
	case "text":
		secs = sections.Slice(text, lang, cfg.TitleMode)
	default:
		return fmt.Errorf("-format must be text or markdown, got %q", *format)
	}

	writer := record.NewWriter(out)
	for i, sec := range secs {
		row := record.SourceRow{
			PackID:       *packID,
			Language:     lang,
			Book:         *book,
			SectionTitle: sec.Title,
			SectionPath:  sec.Path,
			Page:         i,
			Content:      sec.Body,
		}
		if err := writer.Write(&row); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "extracted sections", "pack", *packID, "language", lang, "sections", len(secs))
	return nil
}

// runChunk feeds section rows through the preparation pipeline.
func runChunk(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("chunk", flag.ExitOnError)
	input := fs.String("input", "", "input section rows JSONL (default stdin)")
	output := fs.String("output", "", "output kept chunks JSONL (default stdout)")
	discarded := fs.String("discarded", "", "output discarded chunks JSONL (omitted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, closeIn, err := openInput(*input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer closeOut()

	var discardedOut io.Writer
	if *discarded != "" {
		f, closeDiscarded, err := openOutput(*discarded)
		if err != nil {
			return err
		}
		defer closeDiscarded()
		discardedOut = f
	}

	jsonlSink := pipeline.NewJSONLSink(out, discardedOut)
	sink := pipeline.Sink(jsonlSink)

	pipelineOpts := cfg.PipelineOptions()

	// With a DB path configured, chunks are also persisted for audits.
	if cfg.DBPath != "" {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		repo := storage.NewChunkRepo(db)
		optsJSON, err := json.Marshal(pipelineOpts)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		run := &storage.Run{
			ID:        uuid.New().String(),
			StartedAt: time.Now().UTC().Format(time.RFC3339),
			Options:   string(optsJSON),
		}
		if err := repo.InsertRun(ctx, run); err != nil {
			return err
		}
		sink = pipeline.MultiSink{jsonlSink, pipeline.NewStoreSink(ctx, repo, run.ID)}
		slog.InfoContext(ctx, "audit store enabled", "path", cfg.DBPath, "run_id", run.ID)
	}

	p, err := pipeline.New(pipelineOpts)
	if err != nil {
		return err
	}

	stats, err := p.Run(ctx, record.NewReader(in), sink)
	if err != nil {
		return err
	}
	if err := jsonlSink.Flush(); err != nil {
		return err
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	fmt.Fprintln(os.Stderr, string(statsJSON))
	return nil
}

// runIndex embeds stored chunks and upserts them into per-language
// collections, then reports coverage stats.
func runIndex(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	languagesFlag := fs.String("languages", "ar,en,fr", "comma-separated languages to index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("DB_PATH must be set for indexing")
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)

	// Validate embedding vector size up front (fail-fast)
	testEmbeddings, err := embedder.EmbedTexts(ctx, llm.RolePassage, []string{"test"})
	if err != nil {
		return fmt.Errorf("failed to validate embedding client: %w", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		return fmt.Errorf("embedding vector size mismatch: expected %d", cfg.VectorSize)
	}
	slog.InfoContext(ctx, "embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.VectorSize)

	ix := indexer.NewIndexer(storage.NewChunkRepo(db), embedder, vectorStore, cfg.QdrantCollection, cfg.VectorSize)

	var languages []string
	for _, lang := range strings.Split(*languagesFlag, ",") {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		if !record.KnownLanguage(lang) {
			return fmt.Errorf("unknown language %q", lang)
		}
		languages = append(languages, lang)
	}

	if err := ix.IndexAll(ctx, languages); err != nil {
		return err
	}

	stats, err := ix.GetCoverageStats(ctx, cfg.EmbeddingModelName)
	if err != nil {
		return err
	}
	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	fmt.Fprintln(os.Stderr, string(statsJSON))
	return nil
}

// runServe starts the search API.
func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)

	languages := []string{textnorm.LangAR, textnorm.LangEN, textnorm.LangFR}
	deps := &http.Deps{
		SearchHandler: handlers.NewSearchHandler(embedder, vectorStore, cfg.QdrantCollection),
		HealthHandler: handlers.NewHealthHandler(vectorStore, cfg.QdrantCollection, languages),
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.InfoContext(ctx, "starting server", "addr", addr, "collection", cfg.QdrantCollection)
	return nethttp.ListenAndServe(addr, router)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
