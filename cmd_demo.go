package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dannyswat/htmlidx/index"
	"github.com/dannyswat/htmlidx/tokenizer"
)

var demoCorpus = []struct {
	name string
	html string
}{
	{"cats.html", `<html><body><h1>All About Cats</h1>
<p>The quick cat jumps over the lazy dog. Cats are quiet, independent hunters.</p></body></html>`},
	{"dogs.html", `<html><body><h1>All About Dogs</h1>
<p>The quick dog chases the lazy cat. Dogs are loyal, loud companions.</p></body></html>`},
	{"birds.html", `<html><body><h1>Birds of the Garden</h1>
<p>Birds sing at dawn. Neither cats nor dogs can fly like birds do.</p></body></html>`},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a tiny in-memory index and run a few sample queries",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.CyanString("Inverted Index Demo"))
	fmt.Fprintln(out, "====================")

	clean := tokenizer.NewCleaner()
	m := index.NewMemoryIndex()
	names := make(map[uint32]string)

	fmt.Fprintln(out, "\nIndexing sample corpus...")
	for docID, doc := range demoCorpus {
		names[uint32(docID)] = doc.name
		for _, term := range tokenizer.Terms(clean, []byte(doc.html)) {
			if err := m.Add(term, uint32(docID)); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "  %s\n", color.GreenString(doc.name))
	}
	if err := m.Finalize(uint32(len(demoCorpus))); err != nil {
		return err
	}
	fmt.Fprintln(out, color.GreenString("index built"))

	norms, err := index.ComputeNorms(m)
	if err != nil {
		return err
	}
	eval := index.NewRankingEvaluator(m, norms)

	fmt.Fprintf(out, "\nvocabulary: %d terms, %d documents\n", m.Vocabulary().Len(), m.DocumentCount())
	for _, term := range []string{"cat", "dog", "bird", "quiet"} {
		fmt.Fprintf(out, "  %-8s appears in %d document(s)\n", term, m.DocumentCountWithTerm(term))
	}

	fmt.Fprintln(out, "\nBoolean AND query: cat dog")
	andResult, err := eval.BooleanAnd([]string{"cat", "dog"})
	if err != nil {
		return err
	}
	printDocs(out, andResult, names)

	fmt.Fprintln(out, "\nBoolean OR query: cat bird")
	orResult, err := eval.BooleanOr([]string{"cat", "bird"})
	if err != nil {
		return err
	}
	printDocs(out, orResult, names)

	fmt.Fprintln(out, "\nRanked cosine query: quiet cat")
	ranked, err := eval.Rank([]string{"quiet", "cat"})
	if err != nil {
		return err
	}
	for _, r := range ranked {
		fmt.Fprintf(out, "  %s  %s\n", color.CyanString("%.4f", r.Score), names[r.DocID])
	}

	fmt.Fprintln(out, color.CyanString("\ndemo complete"))
	return nil
}

func printDocs(out io.Writer, docIDs []uint32, names map[uint32]string) {
	if len(docIDs) == 0 {
		fmt.Fprintln(out, color.YellowString("  (no matches)"))
		return
	}
	for _, id := range docIDs {
		fmt.Fprintf(out, "  %s\n", names[id])
	}
}
