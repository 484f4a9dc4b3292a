package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/lattice-substrate/json-parse/internal/config"
	"github.com/lattice-substrate/json-parse/internal/runner"
	"github.com/lattice-substrate/json-parse/jsontoken"
	"github.com/lattice-substrate/json-parse/jsonvalue"
)

// outputAPI re-encodes parsed trees. Keys are sorted so output is stable.
var outputAPI = jsoniter.Config{
	SortMapKeys: true,
	EscapeHTML:  false,
}.Froze()

func newParseCommand() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse one JSON document and print it as compact JSON.",
		Long: `Parse one JSON document from a file, or standard input when the file is
omitted or "-", and print the parsed tree as compact JSON with sorted keys.
Numbers that do not fit an int64 or a finite double are printed as strings.

Exit codes: 0 on success, 2 on invalid input, 10 on internal failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return invalidf("%v", err)
			}

			name := runner.StdinName
			if len(args) == 1 {
				name = args[0]
			}
			input, err := runner.ReadInput(name, cmd.InOrStdin(), cfg.MaxInputSize)
			if err != nil {
				return invalidf("reading input: %v", err)
			}

			v, err := jsontoken.Parse(input)
			if err != nil {
				return err
			}

			if summary {
				return writeSummary(cmd.OutOrStdout(), v)
			}
			return writeCompact(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print value counts by kind instead of the document")
	return cmd
}

func writeCompact(w io.Writer, v jsonvalue.Value) error {
	out, err := outputAPI.Marshal(v.Interface())
	if err != nil {
		return internalf("encoding output: %v", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return internalf("writing output: %v", err)
	}
	return nil
}

// treeStats counts the values of a tree by kind.
type treeStats struct {
	counts   [jsonvalue.KindObject + 1]int
	maxDepth int
}

func (s *treeStats) walk(v jsonvalue.Value, depth int) {
	s.counts[v.Kind()]++
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	switch v.Kind() {
	case jsonvalue.KindArray:
		for i := 0; i < v.Len(); i++ {
			s.walk(v.Index(i), depth+1)
		}
	case jsonvalue.KindObject:
		for _, k := range v.Keys() {
			m, _ := v.Lookup(k)
			s.walk(m, depth+1)
		}
	}
}

func summarize(v jsonvalue.Value) string {
	var s treeStats
	s.walk(v, 0)

	total := 0
	var b strings.Builder
	for k := jsonvalue.KindNull; k <= jsonvalue.KindObject; k++ {
		total += s.counts[k]
		fmt.Fprintf(&b, " %s=%d", k, s.counts[k])
	}
	return fmt.Sprintf("root=%s values=%d depth=%d%s", v.Kind(), total, s.maxDepth, b.String())
}

func writeSummary(w io.Writer, v jsonvalue.Value) error {
	if err := writef(w, "%s\n", summarize(v)); err != nil {
		return internalf("writing output: %v", err)
	}
	return nil
}
