// stixctl runs the extraction pipeline against local files, without the API
// server or any storage backend.
package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stixify/internal/docparse"
	"stixify/internal/extract"
	"stixify/internal/llm"
	"stixify/internal/prompt"
	"stixify/internal/stix"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stixctl",
		Short:         "Extract STIX bundles from documents using LLM providers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newMergeCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var openrouterModel, geminiModel string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a STIX bundle from a local document and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mimeType := mime.TypeByExtension(filepath.Ext(args[0]))
			if mimeType == "" {
				mimeType = "text/plain"
			}
			text := docparse.ExtractText(data, mimeType)

			catalog, err := prompt.Load()
			if err != nil {
				return err
			}

			var providers []extract.Provider
			if or, err := llm.NewOpenRouterClient("", openrouterModel); err == nil {
				providers = append(providers, extract.Provider{Client: or, Flavor: "openrouter"})
			}
			if gm, err := llm.NewGeminiClient(cmd.Context(), "", geminiModel); err == nil {
				providers = append(providers, extract.Provider{Client: gm, Flavor: "gemini"})
			}
			if len(providers) == 0 {
				return fmt.Errorf("no provider credentials found (set OPENROUTER_API_KEY or GEMINI_API_KEY)")
			}

			bundle := extract.New(catalog, providers...).
				ExtractBundle(cmd.Context(), text, filepath.Base(args[0]))
			return printBundle(bundle)
		},
	}
	cmd.Flags().StringVar(&openrouterModel, "openrouter-model", "", "OpenRouter model override")
	cmd.Flags().StringVar(&geminiModel, "gemini-model", "", "Gemini model override")
	return cmd
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <bundle.json>...",
		Short: "Merge STIX bundle files, first-seen-wins by object id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bundles := make([]stix.Bundle, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				var b stix.Bundle
				if err := json.Unmarshal(data, &b); err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
				bundles = append(bundles, b)
			}
			return printBundle(extract.MergeBundles(bundles))
		},
	}
}

func printBundle(b stix.Bundle) error {
	out, err := b.MarshalIndent()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
