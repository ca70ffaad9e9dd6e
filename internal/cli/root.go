package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reelsmith/roundtable/internal/ingest"
	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/observability"
	"github.com/reelsmith/roundtable/internal/persona"
	"github.com/reelsmith/roundtable/internal/render"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "roundtable",
	Short: "Run an AI creative roundtable that turns a short-video brief into a production document",
	RunE:  runGenerate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("roundtable %s\n", Version)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run a roundtable session for a creative brief",
	RunE:  runGenerate,
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the roundtable personas in speaking order",
	Run:   runPersonas,
}

var (
	flagBrief           string
	flagBriefFile       string
	flagPlatform        string
	flagVisualTemplate  string
	flagCharacterVoices string
	flagSettings        string
	flagScreenplay      string
	flagStyleDirectives string
	flagModel           string
	flagTimeout         time.Duration
	flagOutput          string
	flagDocument        string
	flagJSONEvents      bool
	flagVerbose         bool
	flagAnthropicAPIKey string
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(personasCmd)

	for _, cmd := range []*cobra.Command{rootCmd, generateCmd} {
		cmd.Flags().StringVarP(&flagBrief, "brief", "b", "", "Creative brief text")
		cmd.Flags().StringVarP(&flagBriefFile, "brief-file", "f", "", "Load the brief from a file, URL, or PDF")
		cmd.Flags().StringVarP(&flagPlatform, "platform", "p", "tiktok", "Target platform: tiktok, reels, shorts")
		cmd.Flags().StringVar(&flagVisualTemplate, "visual-template", "", "Visual template context (text, file path, URL, or PDF)")
		cmd.Flags().StringVar(&flagCharacterVoices, "character-voices", "", "Character/voice profiles context (text, file path, URL, or PDF)")
		cmd.Flags().StringVar(&flagSettings, "settings", "", "Settings list context (text, file path, URL, or PDF)")
		cmd.Flags().StringVar(&flagScreenplay, "screenplay", "", "Screenplay excerpt context (text, file path, URL, or PDF)")
		cmd.Flags().StringVar(&flagStyleDirectives, "style-directives", "", "Style directives context (text, file path, URL, or PDF)")
		cmd.Flags().StringVarP(&flagModel, "model", "m", "haiku", "Generation model: haiku, sonnet")
		cmd.Flags().DurationVar(&flagTimeout, "call-timeout", 60*time.Second, "Per-model-call timeout")
		cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the full session result JSON to this path")
		cmd.Flags().StringVarP(&flagDocument, "document", "d", "", "Write the final document and shot list to this path")
		cmd.Flags().BoolVar(&flagJSONEvents, "json-events", false, "Emit the raw event stream as NDJSON on stdout instead of the transcript")
		cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
		cmd.Flags().StringVar(&flagAnthropicAPIKey, "anthropic-api-key", "", "Anthropic API key (overrides ANTHROPIC_API_KEY env var)")
	}
}

func Execute() error {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagBrief == "" && flagBriefFile == "" {
		return fmt.Errorf("either --brief (-b) or --brief-file (-f) is required")
	}
	if flagBrief != "" && flagBriefFile != "" {
		return fmt.Errorf("--brief and --brief-file are mutually exclusive")
	}

	validModels := map[string]bool{"haiku": true, "sonnet": true}
	if !validModels[flagModel] {
		return fmt.Errorf("invalid model %q: must be haiku or sonnet", flagModel)
	}

	if flagAnthropicAPIKey != "" {
		os.Setenv("ANTHROPIC_API_KEY", flagAnthropicAPIKey)
	}
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("missing required environment variable ANTHROPIC_API_KEY\nYou can also pass it via --anthropic-api-key")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	brief := flagBrief
	if flagBriefFile != "" {
		text, err := ingest.LoadBlock(ctx, flagBriefFile)
		if err != nil {
			return fmt.Errorf("load brief: %w", err)
		}
		brief = text
	}

	bundle, err := loadContextBundle(ctx)
	if err != nil {
		return err
	}

	logger := observability.InitLogger(flagVerbose)
	registry := persona.DefaultRegistry()
	engine := roundtable.New(llm.NewClaudeGateway(flagModel), roundtable.Options{
		Registry:       registry,
		PerCallTimeout: flagTimeout,
		Logger:         logger,
	})

	var sink roundtable.Sink
	if flagJSONEvents {
		enc := json.NewEncoder(os.Stdout)
		sink = roundtable.SinkFunc(func(e roundtable.Event) error {
			return enc.Encode(e)
		})
	} else {
		sink = render.NewTranscriptRenderer(os.Stdout, registry)
	}

	result, err := engine.StartRoundtable(ctx, roundtable.Request{
		Brief:    brief,
		Platform: flagPlatform,
		Context:  bundle,
	}, sink)
	if err != nil {
		return err
	}

	if flagOutput != "" {
		if err := roundtable.SaveResult(result, flagOutput); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "\nSession result saved to %s\n", flagOutput)
	}

	if result.Status == roundtable.StatusFailed {
		return fmt.Errorf("session failed: %s", result.FailureReason)
	}

	if flagDocument != "" {
		doc := render.FormatMarkdown(result)
		if err := os.WriteFile(flagDocument, []byte(doc), 0644); err != nil {
			return fmt.Errorf("write document to %s: %w", flagDocument, err)
		}
		fmt.Fprintf(os.Stderr, "Final document saved to %s\n", flagDocument)
	}

	return nil
}

func runPersonas(cmd *cobra.Command, args []string) {
	fmt.Println("\nRoundtable personas, in speaking order:")
	for i, p := range persona.DefaultRegistry().All() {
		fmt.Printf("\n  %d. %s — %s (%s)\n", i+1, p.DisplayName(), p.Role(), p.ID())
		fmt.Printf("     %s\n", strings.TrimSpace(p.Expertise()))
	}
	fmt.Println()
}

// loadContextBundle resolves each context flag: values that look like a
// file path, URL, or PDF are ingested; anything else is taken as literal
// text.
func loadContextBundle(ctx context.Context) (roundtable.ContextBundle, error) {
	load := func(field, value string) (string, error) {
		if value == "" {
			return "", nil
		}
		if looksLikeSource(value) {
			text, err := ingest.LoadBlock(ctx, value)
			if err != nil {
				return "", fmt.Errorf("load %s: %w", field, err)
			}
			return text, nil
		}
		return value, nil
	}

	var bundle roundtable.ContextBundle
	var err error
	if bundle.VisualTemplate, err = load("visual-template", flagVisualTemplate); err != nil {
		return bundle, err
	}
	if bundle.CharacterVoices, err = load("character-voices", flagCharacterVoices); err != nil {
		return bundle, err
	}
	if bundle.Settings, err = load("settings", flagSettings); err != nil {
		return bundle, err
	}
	if bundle.Screenplay, err = load("screenplay", flagScreenplay); err != nil {
		return bundle, err
	}
	if bundle.StyleDirectives, err = load("style-directives", flagStyleDirectives); err != nil {
		return bundle, err
	}
	return bundle, nil
}

// looksLikeSource reports whether a flag value references an ingestable
// source rather than literal context text.
func looksLikeSource(v string) bool {
	if ingest.DetectSource(v) != ingest.SourceText {
		return true
	}
	if strings.ContainsAny(v, "\n") {
		return false
	}
	if _, err := os.Stat(v); err == nil {
		return true
	}
	return false
}
