package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"

	"github.com/karupanerura/exprsuite/internal/defaults"
	"github.com/karupanerura/exprsuite/internal/expression"
	"github.com/karupanerura/exprsuite/internal/server"
	"github.com/karupanerura/exprsuite/internal/suite"
	"github.com/karupanerura/exprsuite/internal/types"
)

type Option struct {
	File    string `short:"f" long:"file" description:"[OPTIONAL] Expression suite file (.yaml or .json)" required:"false"`
	Expr    string `short:"e" long:"expr" description:"[OPTIONAL] Expression to evaluate" required:"false"`
	Symbols string `long:"symbols" description:"[OPTIONAL] Symbol bindings as a JSON object, used with --expr" required:"false"`
	Render  bool   `long:"render" description:"[OPTIONAL] Render the decorated syntax tree to STDERR, used with --expr" required:"false"`
	Listen  string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the evaluation API" required:"false"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}

	modes := 0
	for _, set := range []bool{opt.File != "", opt.Expr != "", opt.Listen != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		parser.WriteHelp(os.Stdout)
		return 1
	}

	if opt.Listen != "" {
		if err := serveAPI(opt.Listen); err != nil {
			log.Printf("failed to serve evaluation API: %v", err)
			return 1
		}
		return 0
	}

	if opt.File != "" {
		return runSuite(opt.File)
	}
	return evaluateExpr(opt.Expr, opt.Symbols, opt.Render)
}

func runSuite(filePath string) int {
	s, err := loadSuite(filePath)
	if err != nil {
		log.Printf("failed to load suite: %v", err)
		return 1
	}

	results := s.Run()
	if err := dumpJSON(os.Stdout, results); err != nil {
		log.Printf("failed to dump suite results: %v", err)
		return 1
	}

	// a failed entry does not stop the suite, but it fails the exit code
	for _, result := range results {
		if result.Error != nil {
			return 1
		}
	}
	return 0
}

func evaluateExpr(source, symbolsJSON string, render bool) int {
	st := types.NewSymbolTable()
	st.Parent = defaults.DefaultSymbolTable
	if symbolsJSON != "" {
		if err := bindSymbols(st, symbolsJSON); err != nil {
			log.Printf("failed to parse symbols as JSON: %v", err)
			return 1
		}
	}

	node, err := expression.Parse(source)
	var value any
	if err == nil {
		ev := expression.Evaluator{SymbolTable: st}
		value, err = ev.Evaluate(node)
	}
	if err != nil {
		var exception types.Exception
		if errors.As(err, &exception) {
			if _, err = fmt.Fprintln(os.Stderr, exception.Error()); err != nil {
				log.Printf("failed to dump evaluation error: %v", err)
			}
			if err = dumpJSON(os.Stderr, exception.Exception()); err != nil {
				log.Printf("failed to dump evaluation error as JSON: %v", err)
			}
			return 1
		}
		log.Printf("failed to evaluate expression: %v", err)
		return 1
	}

	if render {
		if _, err = io.WriteString(os.Stderr, expression.Render(node)); err != nil {
			log.Printf("failed to render decorated tree: %v", err)
		}
	}
	if err = dumpJSON(os.Stdout, value); err != nil {
		log.Printf("failed to dump evaluation result: %v", err)
		return 1
	}
	return 0
}

func bindSymbols(st *types.SymbolTable, symbolsJSON string) error {
	decoder := json.NewDecoder(strings.NewReader(symbolsJSON))
	decoder.UseNumber()

	var symbols map[string]any
	if err := decoder.Decode(&symbols); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	for name, value := range symbols {
		v, err := types.NormalizeNumber(value)
		if err != nil {
			return fmt.Errorf("symbol %q: %w", name, err)
		}
		st.Add(name, v)
	}
	return nil
}

func loadSuite(filePath string) (*suite.Suite, error) {
	var parseSuite func(io.Reader) (*suite.Suite, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseSuite = suite.ParseSuiteJSON
	case ".yaml", ".yml":
		parseSuite = suite.ParseSuiteYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	s, err := parseSuite(f)
	if err != nil {
		return nil, fmt.Errorf("suite.ParseSuite: %w", err)
	}
	return s, nil
}

func serveAPI(listen string) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
