package main

import (
	"fmt"
	"os"

	"github.com/psantana/llmdemo/internal/cmd"
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		return
	}

	args := os.Args[2:]

	switch os.Args[1] {
	case "legacy-chat":
		cmd.RunLegacyChat()
	case "responses":
		cmd.RunResponses(args)
	case "completions":
		cmd.RunCompletions(args)
	case "timed-compare":
		cmd.RunTimedCompare()
	case "help":
		showHelp()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("llmdemo - LLM API usage demos")
	fmt.Println("Usage: ./llmdemo [command] [flags]")
	fmt.Println("\nAvailable commands:")
	fmt.Println("  legacy-chat    Chat completions: text, structured output, tool calling")
	fmt.Println("  responses      Responses API: parsing, strict schemas, reasoning summaries")
	fmt.Println("                 (--log-file FILE, --debug)")
	fmt.Println("  completions    Reasoning vs non-reasoning one-shots, multimodal input")
	fmt.Println("                 (--image FILE, --document FILE)")
	fmt.Println("  timed-compare  Timed comparison of model classes")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nConfiguration comes from the environment (.env honored):")
	fmt.Println("  OPENAI_API_KEY (required), OPENAI_BASE_URL, LLM_FAST_MODEL,")
	fmt.Println("  LLM_REASONING_MODEL, LLM_CHAT_MODEL, LLM_RESPONSES_MODEL,")
	fmt.Println("  LLM_TIMEOUT, LLM_MAX_RETRIES, LLM_DEBUG, LLM_CACHE_SIZE,")
	fmt.Println("  LLM_RATE_LIMIT")
}
