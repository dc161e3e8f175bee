package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dannyswat/htmlidx/index"
	"github.com/dannyswat/htmlidx/tokenizer"
)

var queryMode string

var queryCmd = &cobra.Command{
	Use:   "query <terms...>",
	Short: "Query a previously built index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryMode, "mode", "rank", "query mode: rank, and, or")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	indexDir := viper.GetString("index-dir")
	fs := &index.OSFileSystem{}

	store, err := index.OpenVocabularyStore(fs, filepath.Join(indexDir, "vocab"))
	if err != nil {
		return fmt.Errorf("open vocabulary store: %w", err)
	}
	vocab, err := store.Load()
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	docs, err := loadDocRegistry(indexDir)
	if err != nil {
		return fmt.Errorf("load doc registry: %w", err)
	}

	reader := index.NewIndexReader(fs, filepath.Join(indexDir, "postings.idx"), vocab, uint32(len(docs.Paths)))

	clean := tokenizer.NewCleaner()
	terms := tokenizer.Terms(clean, []byte(strings.Join(args, " ")))
	if len(terms) == 0 {
		return fmt.Errorf("query produced no terms after tokenization")
	}

	switch queryMode {
	case "and", "or":
		return runBooleanQuery(cmd, reader, docs, terms, queryMode)
	case "rank":
		return runRankQuery(cmd, reader, docs, terms)
	default:
		return fmt.Errorf("unknown query mode %q, expected and, or, or rank", queryMode)
	}
}

func runBooleanQuery(cmd *cobra.Command, reader *index.IndexReader, docs *docRegistry, terms []string, mode string) error {
	eval := index.NewRankingEvaluator(reader, nil)
	var (
		docIDs []uint32
		err    error
	)
	if mode == "and" {
		docIDs, err = eval.BooleanAnd(terms)
	} else {
		docIDs, err = eval.BooleanOr(terms)
	}
	if err != nil {
		return err
	}
	if len(docIDs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("no matching documents"))
		return nil
	}
	for _, docID := range docIDs {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(docs.Paths[docID]))
	}
	return nil
}

func runRankQuery(cmd *cobra.Command, reader *index.IndexReader, docs *docRegistry, terms []string) error {
	norms, err := index.ComputeNorms(reader)
	if err != nil {
		return fmt.Errorf("compute norms: %w", err)
	}
	eval := index.NewRankingEvaluator(reader, norms)
	results, err := eval.Rank(terms)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("no matching documents"))
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", color.CyanString("%.4f", r.Score), docs.Paths[r.DocID])
	}
	return nil
}
