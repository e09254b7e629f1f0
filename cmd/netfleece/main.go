// Command netfleece decodes an MS-NRBF byte stream to JSON.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andybalholm/brotli"
	"github.com/davecgh/go-spew/spew"

	"github.com/MiraCrypto/netfleece/pkg/netfleece"
	"github.com/MiraCrypto/netfleece/pkg/netfleece/capture"
)

// Exit codes: 0 success, 1 decode/parse error, 2 usage/setup error.
const (
	exitOK    = 0
	exitParse = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("netfleece", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		base64Flag   = fs.Bool("base64", false, "input is base64-encoded")
		brotliFlag   = fs.Bool("brotli", false, "input is brotli-compressed (applied after base64 decoding, if any)")
		resolve      = fs.String("resolve", "expand", `reference resolution mode: "none", "inplace", or "expand"`)
		pretty       = fs.Bool("pretty", true, "indent JSON output")
		dump         = fs.String("dump", "", `set to "go" to print a Go-syntax debug dump instead of JSON`)
		configPath   = fs.String("config", "", "path to a YAML config file")
		listen       = fs.String("listen", "", "run a live capture listener on this address instead of decoding stdin")
		aliasClasses = fs.Bool("alias-classes", false, "substitute short display names for class names, per the config's class_aliases table")
		version      = fs.Bool("version", false, "print the netfleece version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: netfleece [flags] [input-file|-]\n\nReads an MS-NRBF stream (from a file argument, or stdin if omitted or \"-\") and writes decoded JSON.\n\nflags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *version {
		fmt.Fprintln(stdout, netfleece.Version)
		return exitOK
	}

	cfg := netfleece.DefaultConfig()
	if *configPath != "" {
		loaded, err := netfleece.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "netfleece: %v\n", err)
			return exitUsage
		}
		cfg = loaded
	}
	// Flags explicitly passed on the command line win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resolve":
			cfg.Resolve = *resolve
		case "pretty":
			cfg.Pretty = *pretty
		case "listen":
			cfg.Listen = *listen
		}
	})

	if cfg.Listen != "" {
		return runListen(cfg.Listen, cfg, stderr)
	}

	mode, err := netfleece.ResolveModeFromString(cfg.Resolve)
	if err != nil {
		fmt.Fprintf(stderr, "netfleece: %v\n", err)
		return exitUsage
	}

	raw, err := readInput(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "netfleece: %v\n", err)
		return exitUsage
	}

	if *base64Flag {
		decoded, err := base64.StdEncoding.DecodeString(string(raw))
		if err != nil {
			fmt.Fprintf(stderr, "netfleece: base64 decode: %v\n", err)
			return exitUsage
		}
		raw = decoded
	}
	if *brotliFlag {
		decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		if err != nil {
			fmt.Fprintf(stderr, "netfleece: brotli decode: %v\n", err)
			return exitUsage
		}
		raw = decoded
	}

	drv := netfleece.NewDriver()
	defer drv.Close()

	doc, err := drv.ParseAndResolve(raw, mode, nil)
	if err != nil {
		var pe *netfleece.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(stderr, "netfleece: %v\n", pe)
			return exitParse
		}
		fmt.Fprintf(stderr, "netfleece: %v\n", err)
		return exitParse
	}

	root := doc.Root
	if *aliasClasses && len(cfg.ClassAliases) > 0 {
		root = netfleece.ApplyClassAliases(root, cfg.ClassAliases)
	}

	if *dump == "go" {
		spew.Fdump(stdout, root)
		return exitOK
	}

	var out []byte
	if cfg.Pretty {
		out, err = json.MarshalIndent(root, "", "  ")
	} else {
		out, err = json.Marshal(root)
	}
	if err != nil {
		fmt.Fprintf(stderr, "netfleece: marshal output: %v\n", err)
		return exitParse
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func readInput(fileArgs []string, stdin io.Reader) ([]byte, error) {
	if len(fileArgs) == 0 || fileArgs[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(fileArgs[0])
}

func runListen(addr string, cfg *netfleece.Config, stderr io.Writer) int {
	mode, err := netfleece.ResolveModeFromString(cfg.Resolve)
	if err != nil {
		fmt.Fprintf(stderr, "netfleece: %v\n", err)
		return exitUsage
	}
	logger := log.New(stderr, "netfleece: ", log.LstdFlags)
	srv := capture.NewCaptureServer(addr, mode, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(stderr, "netfleece: listen: %v\n", err)
		return exitUsage
	}
	return exitOK
}
