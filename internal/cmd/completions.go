package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/psantana/llmdemo/internal/config"
	"github.com/psantana/llmdemo/internal/imaging"
	"github.com/psantana/llmdemo/internal/llm"
	"github.com/psantana/llmdemo/internal/prompts"
)

// maxDocumentChars caps how much document text is sent to the model
// before truncation kicks in.
const maxDocumentChars = 400_000

// RunCompletions compares a non-reasoning model against a reasoning
// model configured for expedient answers (low verbosity, minimal
// effort), then runs the multimodal demos: image analysis from a
// local file and long-document summarization with truncation.
func RunCompletions(args []string) {
	fs := flag.NewFlagSet("completions", flag.ExitOnError)
	imagePath := fs.String("image", "", "image file for the visual analysis demo")
	documentPath := fs.String("document", "", "text file for the document summarization demo")
	// ExitOnError: Parse exits on bad flags itself.
	fs.Parse(args)

	cfg, catalog := mustSetup()

	client, err := buildClient(cfg, cfg.Debug, true)
	if err != nil {
		panic(fmt.Sprintf("failed to build client: %v", err))
	}

	completionsDemo(context.Background(), client, cfg, catalog, *imagePath, *documentPath, os.Stdout)
}

func completionsDemo(ctx context.Context, client llm.LLMClient, cfg *config.Config, catalog *prompts.Catalog, imagePath, documentPath string, w io.Writer) {
	helloMessages := []llm.Message{
		{Role: llm.RoleSystem, Content: catalog.MustGet("assistant_system")},
		{Role: llm.RoleUser, Content: catalog.MustGet("hello_weather")},
	}

	runSection(w, fmt.Sprintf("%s Completion", cfg.FastModel), func() error {
		return fastCompletion(ctx, client, cfg.FastModel, helloMessages, w)
	})

	runSection(w, fmt.Sprintf("%s One-shot Completion", cfg.ReasoningModel), func() error {
		return oneShotReasoning(ctx, client, cfg.ReasoningModel, helloMessages, w)
	})

	runSection(w, "Image Analysis", func() error {
		if imagePath == "" {
			fmt.Fprintln(w, "skipped: no --image file supplied")
			return nil
		}
		return imageAnalysis(ctx, client, cfg.ChatModel, catalog, imagePath, w)
	})

	runSection(w, "Document Summarization", func() error {
		if documentPath == "" {
			fmt.Fprintln(w, "skipped: no --document file supplied")
			return nil
		}
		return documentSummary(ctx, client, cfg.FastModel, catalog, documentPath, w)
	})
}

// fastCompletion is the non-reasoning baseline: temperature 0 for
// deterministic output.
func fastCompletion(ctx context.Context, client llm.LLMClient, model string, messages []llm.Message, w io.Writer) error {
	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: llm.Float64(0),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

// oneShotReasoning configures a reasoning model for speed while
// keeping its enhanced capabilities: low verbosity trims output
// overhead, minimal effort trims thinking time.
func oneShotReasoning(ctx context.Context, client llm.LLMClient, model string, messages []llm.Message, w io.Writer) error {
	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model:           model,
		Messages:        messages,
		Verbosity:       llm.VerbosityLow,
		ReasoningEffort: llm.EffortMinimal,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

// imageAnalysis sends a local image as a base64 data URL inside an
// image_url content part, with detail set high for a thorough look.
func imageAnalysis(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, imagePath string, w io.Writer) error {
	dataURL, err := imaging.DataURL(imagePath)
	if err != nil {
		return err
	}

	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: catalog.MustGet("vision_system")},
			{
				Role: llm.RoleUser,
				Parts: []llm.ContentPart{
					llm.TextPart(catalog.MustGet("image_analysis")),
					llm.ImagePart(dataURL, "high"),
				},
			},
		},
		Temperature: llm.Float64(0),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

func documentSummary(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, documentPath string, w io.Writer) error {
	raw, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	text := imaging.Truncate(string(raw), maxDocumentChars)
	prompt := fmt.Sprintf(catalog.MustGet("document_summary"), documentPath, text)

	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: catalog.MustGet("document_system")},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: llm.Float64(0),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}
