// Command ivyc is the CLI front end for the code generator: a
// `translate` subcommand that runs one file through the pipeline and
// writes its target-language output, and a `serve` subcommand that
// exposes the same pipeline over gRPC (internal/rpc). Argument parsing
// follows the teacher pack's own cmd/funxy/main.go: a hand-rolled scan
// of os.Args, not a flag-parsing library, since the teacher pack
// doesn't reach for one either.
package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/ivylang/ivyc/internal/ast"
	"github.com/ivylang/ivyc/internal/backend"
	"github.com/ivylang/ivyc/internal/cache"
	"github.com/ivylang/ivyc/internal/config"
	"github.com/ivylang/ivyc/internal/diagnostics"
	"github.com/ivylang/ivyc/internal/pipeline"
	"github.com/ivylang/ivyc/internal/rpc"
	"github.com/ivylang/ivyc/internal/session"
	"github.com/ivylang/ivyc/internal/term"
	"github.com/ivylang/ivyc/internal/yamlconfig"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "translate":
		runTranslate(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "ivyc: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  ivyc translate [--config path] [--cache path] <file.sexp.json>")
	fmt.Fprintln(os.Stderr, "  ivyc serve [--config path] [--cache path] [--addr host:port]")
}

// runTranslate decodes one sexp-JSON file and writes its translation
// to stdout, exiting 1 on any diagnostic.
func runTranslate(args []string) {
	configPath, cachePath, rest := parseCommonFlags(args)
	if len(rest) != 1 {
		usage()
		os.Exit(1)
	}
	path := rest[0]

	opts, err := yamlconfig.Load(configPath, config.Defaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: %s\n", err)
		os.Exit(1)
	}
	if opts.File == config.Defaults().File {
		opts.File = path
		opts = opts.Normalize()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: %s\n", err)
		os.Exit(1)
	}

	root, err := ast.Decode(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: %s: %s\n", path, err)
		os.Exit(1)
	}

	var c *cache.Cache
	if cachePath != "" {
		c, err = cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ivyc: opening cache: %s\n", err)
			os.Exit(1)
		}
		defer c.Close()
	}

	corrID := session.New()
	b := backend.New(opts)

	ctx := &pipeline.PipelineContext{
		FilePath: path,
		Source:   source,
		Options:  opts,
	}
	p := pipeline.New(
		cache.NewLookupProcessor(c),
		backend.NewTranslationProcessor(b, root),
		cache.NewStoreProcessor(c),
	)
	ctx = p.Run(ctx)

	if ctx.Err != nil {
		color := term.ColorEnabled(os.Stderr)
		for _, d := range ctx.Diagnostics {
			d.Session = corrID
			printDiagnostic(d, color)
		}
		if len(ctx.Diagnostics) == 0 {
			fmt.Fprintf(os.Stderr, "ivyc: session %s: %s\n", corrID, ctx.Err)
		}
		os.Exit(1)
	}

	fmt.Print(ctx.Output)
}

// runServe starts the gRPC CodegenService and blocks until killed.
func runServe(args []string) {
	configPath, cachePath, _ := parseCommonFlags(args)
	addr := "127.0.0.1:50051"
	for i := 0; i < len(args); i++ {
		if args[i] == "--addr" && i+1 < len(args) {
			addr = args[i+1]
			i++
		}
	}

	opts, err := yamlconfig.Load(configPath, config.Defaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: %s\n", err)
		os.Exit(1)
	}

	var c *cache.Cache
	if cachePath != "" {
		c, err = cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ivyc: opening cache: %s\n", err)
			os.Exit(1)
		}
		defer c.Close()
	}

	svc := rpc.New(opts, c)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: listen %s: %s\n", addr, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "ivyc: serving CodegenService on %s\n", addr)
	if err := rpc.Serve(lis, svc); err != nil {
		fmt.Fprintf(os.Stderr, "ivyc: serve: %s\n", err)
		os.Exit(1)
	}
}

// parseCommonFlags extracts --config and --cache, in any position,
// returning the remaining positional args.
func parseCommonFlags(args []string) (configPath, cachePath string, rest []string) {
	configPath = "ivyc.yaml"
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case args[i] == "--cache" && i+1 < len(args):
			cachePath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-"):
			// unknown flag: ignore, keep scanning
		default:
			rest = append(rest, args[i])
		}
	}
	return configPath, cachePath, rest
}

func printDiagnostic(d *diagnostics.Diagnostic, color bool) {
	if !color {
		fmt.Fprintf(os.Stderr, "%s\n", d.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", d.Error())
}
