package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp"
	"github.com/karupanerura/minilang/internal/lang"
	"github.com/karupanerura/minilang/internal/types"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	PrintTokens bool   `short:"t" long:"print-tokens" description:"[OPTIONAL] Print the lexed tokens of each source file"`
	PrintAST    bool   `short:"a" long:"print-ast" description:"[OPTIONAL] Print the AST of each source file"`
	Output      string `short:"o" long:"output" description:"[OPTIONAL] Variable dump format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Vars        string `long:"vars" description:"[OPTIONAL] Preset variable bindings (JSON object)"`
	Args        struct {
		Files []string `positional-arg-name:"file" required:"1"`
	} `positional-args:"yes"`
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

	seed, err := parseVars(opt.Vars)
	if err != nil {
		log.Printf("failed to parse vars: %v", err)
		return 1
	}

	// Each file runs through its own pipeline; the pipelines share nothing,
	// so they can run concurrently. Rendering stays in argument order.
	results := make([]*result, len(opt.Args.Files))
	eg := errgroup.Group{}
	for i, file := range opt.Args.Files {
		i, file := i, file
		eg.Go(func() error {
			res, err := interpretFile(file, seed)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Printf("failed to interpret: %v", err)
		return 1
	}

	code := 0
	for i, res := range results {
		if c := res.render(opt.Args.Files[i], &opt); c != 0 {
			code = c
		}
	}
	return code
}

// result is the outcome of one file's pipeline. Stage fields are set only
// when that stage completed without diagnostics.
type result struct {
	tokens   []lang.Token
	prog     *lang.Program
	bindings *types.Bindings
	diags    []types.Diagnostic
}

func interpretFile(name string, seed map[string]int64) (*result, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	res := &result{}

	tokens := lang.NewLexer(src).Lex()
	if res.diags = lang.UnknownDiagnostics(src, tokens); len(res.diags) != 0 {
		return res, nil
	}
	res.tokens = tokens

	prog, diags := lang.NewParserFromTokens(src, tokens).Parse()
	if len(diags) != 0 {
		res.diags = diags
		return res, nil
	}
	res.prog = prog

	ev := lang.NewEvaluator(src)
	if len(seed) != 0 {
		ev.Bindings = types.SeededBindings(seed)
	}
	if diags := ev.Evaluate(prog); len(diags) != 0 {
		res.diags = diags
		return res, nil
	}
	res.bindings = ev.Bindings

	return res, nil
}

func (r *result) render(name string, opt *Option) int {
	if opt.PrintTokens && r.tokens != nil {
		fmt.Printf("The lexed tokens of %s are:\n", name)
		pp.Println(r.tokens)
	}
	if opt.PrintAST && r.prog != nil {
		fmt.Printf("The AST of %s is:\n", name)
		pp.Println(r.prog)
	}

	if len(r.diags) != 0 {
		fmt.Fprintf(os.Stderr, "The program has %d error(s):\n\n", len(r.diags))
		if err := types.WriteReport(os.Stderr, name, r.diags); err != nil {
			log.Printf("failed to write report: %v", err)
		}
		return 1
	}

	if err := dumpBindings(os.Stdout, opt.Output, r.bindings); err != nil {
		log.Printf("failed to dump variables: %v", err)
		return 1
	}
	return 0
}

func dumpBindings(w io.Writer, format string, b *types.Bindings) error {
	switch format {
	case "json":
		return dumpJSON(w, b.Map())

	case "yaml":
		out, err := yaml.Marshal(b.Map())
		if err != nil {
			return fmt.Errorf("yaml.Marshal: %w", err)
		}
		if _, err = w.Write(out); err != nil {
			return fmt.Errorf("w.Write: %w", err)
		}
		return nil

	default:
		if _, err := fmt.Fprintf(w, "The result of the program is:\n\n"); err != nil {
			return fmt.Errorf("fmt.Fprintf: %w", err)
		}
		for _, name := range b.Names() {
			v, _ := b.Get(name)
			if _, err := fmt.Fprintf(w, "%s => %d\n", name, v); err != nil {
				return fmt.Errorf("fmt.Fprintf: %w", err)
			}
		}
		return nil
	}
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

// parseVars decodes the --vars JSON object into seed bindings. JSON numbers
// arrive as float64; mapstructure's weak typing narrows them to int64.
func parseVars(s string) (map[string]int64, error) {
	if s == "" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var vars map[string]int64
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &vars,
	})
	if err != nil {
		return nil, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}
	return vars, nil
}
