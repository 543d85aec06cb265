package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexibook/lexibook/internal/dict"
	"github.com/lexibook/lexibook/internal/ingest"
	"github.com/lexibook/lexibook/internal/server"
	"github.com/lexibook/lexibook/internal/vocab"
	"github.com/lexibook/lexibook/internal/wordlist"
)

var rootCmd = &cobra.Command{
	Use:   "lexibook",
	Short: "Ingest EPUB books and serve them as paginated reading material",
	Long: `lexibook extracts text, images and metadata from EPUB ebooks, builds
per-book word-frequency tables, splits the content into fixed-size JSON
pages, and serves the results together with a personal vocabulary list
and dictionary lookups over a small HTTP API.`,
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Process all unprocessed EPUB files from the source directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		data, _ := cmd.Flags().GetString("data")
		threshold, _ := cmd.Flags().GetInt("min-words")

		runner := &ingest.Runner{
			SourceDir: source,
			DataDir:   data,
			Threshold: threshold,
		}
		if err := runner.Run(); err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve processed books, vocabulary and dictionary over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, _ := cmd.Flags().GetString("data")
		addr, _ := cmd.Flags().GetString("addr")
		vocabPath, _ := cmd.Flags().GetString("vocab")
		dictPath, _ := cmd.Flags().GetString("dict")

		store, err := vocab.Open(vocabPath)
		if err != nil {
			return fmt.Errorf("failed to open vocabulary: %w", err)
		}

		dictionary, err := dict.Load(dictPath)
		if err != nil {
			log.Printf("warning: failed to load dictionary: %v", err)
			dictionary = dict.New()
		}
		log.Printf("loaded %d dictionary entries", dictionary.Len())

		router := server.New(server.Config{
			DataDir: data,
			Vocab:   store,
			Dict:    dictionary,
		})

		log.Printf("listening on %s", addr)
		return router.Run(addr)
	},
}

var mergeWordsCmd = &cobra.Command{
	Use:   "merge-words BOOK...",
	Short: "Merge per-book unique word lists into one filtered list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, _ := cmd.Flags().GetString("data")
		common, _ := cmd.Flags().GetString("common")
		output, _ := cmd.Flags().GetString("output")

		count, err := wordlist.Merge(wordlist.Options{
			DataDir:         data,
			Books:           args,
			CommonWordsPath: common,
			OutputPath:      output,
		})
		if err != nil {
			return fmt.Errorf("merge failed: %w", err)
		}

		log.Printf("wrote %d words to %s", count, output)
		return nil
	},
}

func init() {
	parseCmd.Flags().String("source", "book-source", "Directory containing EPUB files")
	parseCmd.Flags().String("data", "book-data", "Output directory for processed books")
	parseCmd.Flags().Int("min-words", ingest.MinWordsPerPage, "Minimum tokens per page")

	serveCmd.Flags().String("data", "book-data", "Directory of processed books")
	serveCmd.Flags().String("addr", ":3005", "Listen address")
	serveCmd.Flags().String("vocab", "users/userVocab.json", "User vocabulary file")
	serveCmd.Flags().String("dict", "vocab/freedict.json", "Dictionary file")

	mergeWordsCmd.Flags().String("data", "book-data", "Directory of processed books")
	mergeWordsCmd.Flags().String("common", "", "File of common words to exclude, one per line")
	mergeWordsCmd.Flags().StringP("output", "o", "merged-unique-words.txt", "Output file")

	rootCmd.AddCommand(parseCmd, serveCmd, mergeWordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
