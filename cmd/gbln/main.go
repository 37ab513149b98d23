package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	gbln "github.com/gbln-format/gbln-go"
	"github.com/gbln-format/gbln-go/gblnio"
	"github.com/gbln-format/gbln-go/value"
)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	scalarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// plain disables styling when stdout is not a terminal.
var plain bool

func render(st lipgloss.Style, s string) string {
	if plain {
		return s
	}
	return st.Render(s)
}

func main() {
	var (
		inFile   = flag.String("in", "", "Input file (.gbln source or .gbln.io container)")
		outFile  = flag.String("out", "", "Output file (omit to print to stdout)")
		mini     = flag.Bool("mini", false, "Render compact output with no whitespace")
		compress = flag.Bool("compress", false, "Wrap output in a compressed container")
		codec    = flag.String("codec", "zstd", "Container codec: none, zstd, lz4, brotli")
		level    = flag.Int("level", 0, "Compression level 0-9 (0 = codec default)")
		indent   = flag.Int("indent", 2, "Pretty-print indent width 0-16")
		inspect  = flag.Bool("inspect", false, "Print a document summary and exit")
		verbose  = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: gbln -in <file> [-out <file>] [-mini] [-compress -codec zstd]")
		fmt.Fprintln(os.Stderr, "       gbln -in <file> -inspect")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		gblnio.SetLogger(logger)
	}

	plain = !term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(*inFile, *outFile, *mini, *compress, *codec, *level, *indent, *inspect); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile string, mini, compress bool, codecName string, level, indent int, inspect bool) error {
	doc, err := gbln.ReadFile(inFile)
	if err != nil {
		return err
	}

	if inspect {
		printSummary(inFile, doc)
		return nil
	}

	codec, err := gblnio.CodecByName(codecName)
	if err != nil {
		return err
	}
	cfg := gbln.Config{
		MiniMode: mini,
		Compress: compress,
		Codec:    codec,
		Level:    level,
		Indent:   indent,
	}

	if outFile != "" {
		return gbln.WriteFile(outFile, doc, cfg)
	}

	var text string
	if mini {
		text, err = gbln.ToString(doc)
	} else {
		text, err = gbln.ToStringPretty(doc, indent)
	}
	if err != nil {
		return err
	}
	fmt.Print(text)
	if mini {
		fmt.Println()
	}
	return nil
}

// printSummary renders a styled outline of the document plus counts per
// value kind.
func printSummary(path string, doc gbln.Value) {
	fmt.Println(render(headerStyle, "GBLN Document"), path)
	fmt.Println()

	counts := map[value.Kind]int{}
	printTree(doc, "", 0, counts)

	fmt.Println()
	kinds := make([]value.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	var parts []string
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	fmt.Println(strings.Join(parts, "  "))
}

func printTree(v gbln.Value, key string, depth int, counts map[value.Kind]int) {
	counts[v.Kind()]++
	pad := strings.Repeat("  ", depth)

	label := ""
	if key != "" {
		label = render(keyStyle, key) + " "
	}

	switch v.Kind() {
	case value.KindObject:
		fmt.Printf("%s%s%s\n", pad, label, render(typeStyle, fmt.Sprintf("object(%d)", v.Len())))
		keys := make([]string, 0, v.Len())
		for k := range v.AsObject() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, _ := v.Get(k)
			printTree(child, k, depth+1, counts)
		}
	case value.KindArray:
		fmt.Printf("%s%s%s\n", pad, label, render(typeStyle, fmt.Sprintf("array(%d)", v.Len())))
		for _, elem := range v.AsArray() {
			printTree(elem, "", depth+1, counts)
		}
	default:
		fmt.Printf("%s%s%s %s\n", pad, label,
			render(typeStyle, v.Kind().String()),
			render(scalarStyle, formatScalar(v)))
	}
}

func formatScalar(v gbln.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return fmt.Sprintf("%t", v.AsBool())
	case value.KindInt:
		return fmt.Sprintf("%d", v.AsInt())
	case value.KindFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case value.KindString:
		return fmt.Sprintf("%q", v.AsString())
	default:
		return ""
	}
}
