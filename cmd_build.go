package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dannyswat/htmlidx/index"
	"github.com/dannyswat/htmlidx/tokenizer"
)

var buildCmd = &cobra.Command{
	Use:   "build <corpus-dir>",
	Short: "Build an inverted index over every .html file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	corpusDir := args[0]
	indexDir := viper.GetString("index-dir")
	tmpLimit := viper.GetInt("tmp-limit")

	fs := &index.OSFileSystem{}
	builder, err := index.NewIndexBuilder(fs, index.BuilderConfig{Dir: indexDir, TmpLimit: tmpLimit})
	if err != nil {
		return fmt.Errorf("create builder: %w", err)
	}

	clean := tokenizer.NewCleaner()
	docs := newDocRegistry()

	err = filepath.Walk(corpusDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docID := docs.Assign(path)
		for _, term := range tokenizer.Terms(clean, raw) {
			if err := builder.Add(term, docID); err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("indexed"), path)
		return nil
	})
	if err != nil {
		return err
	}

	if err := builder.Finalize(); err != nil {
		return fmt.Errorf("finalize index: %w", err)
	}

	vocabDir := filepath.Join(indexDir, "vocab")
	store, err := index.OpenVocabularyStore(fs, vocabDir)
	if err != nil {
		return fmt.Errorf("open vocabulary store: %w", err)
	}
	if err := store.Save(builder.Vocabulary()); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	if err := docs.save(indexDir); err != nil {
		return fmt.Errorf("save doc registry: %w", err)
	}

	stats := builder.Stats(filepath.Base(corpusDir))
	fmt.Fprintln(cmd.OutOrStdout(), color.CyanString("\nbuild complete"))
	fmt.Fprintf(cmd.OutOrStdout(), "  documents: %d\n", stats.DocumentCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  terms:     %d\n", stats.TermCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  spills:    %d\n", stats.Generations)
	return nil
}
