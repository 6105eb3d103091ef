package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"recruiter-rag/internal/config"
	"recruiter-rag/internal/embedding"
	"recruiter-rag/internal/generator"
	"recruiter-rag/internal/helper"
	"recruiter-rag/internal/models"
	"recruiter-rag/internal/rag"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	var (
		configPath string
		cvDir      string
		question   string
		asJSON     bool
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "recruiter-rag",
		Short: "Ask questions about a directory of candidate CVs",
		Long: "recruiter-rag indexes a directory of CVs (pdf, docx, txt, xlsx, ods) into an in-memory\n" +
			"vector store and answers recruiter questions with cited excerpts.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return run(cmd.Context(), configPath, cvDir, question, asJSON)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the config file")
	rootCmd.Flags().StringVarP(&cvDir, "dir", "d", "", "Directory containing CV files (required)")
	rootCmd.Flags().StringVarP(&question, "query", "q", "", "Ask a single question and exit")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print one-shot answers as JSON")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("dir")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, cvDir, question string, asJSON bool) error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	embedder, err := embedding.NewService(&cfg.Embedding)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}

	gen, err := generator.NewGemini(ctx, os.Getenv(cfg.Generation.APIKeyEnv), cfg.Generation.Model, cfg.Generation.Temperature)
	if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}

	session := rag.NewSession(cfg, embedder, gen)

	files, err := readCVDir(cvDir)
	if err != nil {
		return err
	}

	batch, err := session.Ingest(ctx, files)
	if err != nil {
		for _, skipped := range batch.Skipped {
			log.Warn().Str("file", skipped.Filename).Str("reason", skipped.Reason).Msg("Skipped")
		}
		return fmt.Errorf("index CVs: %w", err)
	}

	fmt.Printf("Indexed %s\n", helper.FormatApplicantList(batch.Succeeded))
	for _, skipped := range batch.Skipped {
		fmt.Printf("Skipped %s: %s\n", skipped.Filename, skipped.Reason)
	}

	if question != "" {
		result := session.Query(ctx, question)
		if asJSON {
			helper.PrettyPrint(result)
			return nil
		}
		printResult(result)
		return nil
	}

	return interact(ctx, session)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("Config file not found, using defaults")
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func readCVDir(dir string) ([]models.UploadFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read CV directory: %w", err)
	}

	var files []models.UploadFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Cannot read file")
			continue
		}
		files = append(files, models.UploadFile{Name: entry.Name(), Data: data})
	}
	return files, nil
}

func interact(ctx context.Context, session *rag.Session) error {
	fmt.Println("\nExample questions:")
	for _, s := range session.Suggestions() {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Println("\nType a question, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}
		printResult(session.Query(ctx, question))
	}
}

func printResult(result *models.QueryResult) {
	fmt.Println("\n" + result.Answer)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range result.Sources {
			fmt.Printf("  [%s] %s: %s\n", src.Kind, src.Applicant, src.Snippet)
		}
	}
	fmt.Println()
}
