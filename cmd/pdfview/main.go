// pdfview resolves PDF delivery strategies and displays documents in a
// headless Chrome surface.
//
// Usage:
//
//	pdfview resolve [flags]
//	pdfview open [flags]
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	pdfview "github.com/porticus-lab/go-pdf-view"
)

func main() {
	// .env provides defaults for the PDFVIEW_* variables; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "resolve":
		err = runResolve(os.Args[2:])
	case "open":
		err = runOpen(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`pdfview - deliver PDF documents to an embedded web viewer

Usage:
  pdfview resolve [flags]   Resolve the delivery strategy (and optionally stage)
  pdfview open [flags]      Stage and display the document in headless Chrome

Common flags:
  --uri <url>           Remote http(s), file:// or content:// source
  --base64-file <path>  Read a local PDF and deliver it as an inline payload
  --header <k=v>        Header sent with URI fetches (repeatable)
  --platform <name>     Target platform: android or ios (default android)
  --google-reader       Wrap the URI in the Google Docs viewer
  --cache-dir <dir>     Staging directory (default: $PDFVIEW_CACHE_DIR or user cache)
  --scroll-disabled     Disable scrolling in the generated viewer page
  -v                    Verbose logging

Resolve flags:
  --stage               Also stage artifacts and print the locator

Open flags:
  --chrome <path>       Chrome executable (default: $PDFVIEW_CHROME or PATH)
  --no-sandbox          Disable the Chrome sandbox
  --auto-download       Download a Chromium binary when none is found
  --timeout <dur>       Display timeout (default 30s)
`)
}

// sourceFlags holds the flags shared by both subcommands.
type sourceFlags struct {
	uri            string
	base64File     string
	headers        []string
	platform       string
	googleReader   bool
	cacheDir       string
	scrollDisabled bool
	verbose        bool
}

func (sf *sourceFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&sf.uri, "uri", "", "Remote http(s), file:// or content:// source")
	flags.StringVar(&sf.base64File, "base64-file", "", "Local PDF delivered as an inline payload")
	flags.StringArrayVar(&sf.headers, "header", nil, "Header sent with URI fetches (k=v, repeatable)")
	flags.StringVar(&sf.platform, "platform", "android", "Target platform: android or ios")
	flags.BoolVar(&sf.googleReader, "google-reader", false, "Wrap the URI in the Google Docs viewer")
	flags.StringVar(&sf.cacheDir, "cache-dir", os.Getenv("PDFVIEW_CACHE_DIR"), "Staging directory")
	flags.BoolVar(&sf.scrollDisabled, "scroll-disabled", false, "Disable scrolling in the generated viewer page")
	flags.BoolVarP(&sf.verbose, "verbose", "v", false, "Verbose logging")
}

// source builds the pdfview source from the parsed flags.
func (sf *sourceFlags) source() (pdfview.Source, error) {
	src := pdfview.Source{URI: sf.uri}
	if sf.base64File != "" {
		data, err := os.ReadFile(sf.base64File)
		if err != nil {
			return pdfview.Source{}, fmt.Errorf("reading %s: %w", sf.base64File, err)
		}
		src.Base64 = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)
	}
	if len(sf.headers) > 0 {
		src.Headers = make(map[string]string, len(sf.headers))
		for _, h := range sf.headers {
			k, v, ok := strings.Cut(h, "=")
			if !ok {
				return pdfview.Source{}, fmt.Errorf("invalid header %q, want k=v", h)
			}
			src.Headers[k] = v
		}
	}
	if src.URI == "" && src.Base64 == "" {
		return pdfview.Source{}, fmt.Errorf("no source: provide --uri or --base64-file")
	}
	return src, nil
}

// options translates the shared flags into library options.
func (sf *sourceFlags) options() ([]pdfview.Option, error) {
	var opts []pdfview.Option
	switch sf.platform {
	case "android":
		opts = append(opts, pdfview.WithPlatform(pdfview.Android))
	case "ios":
		opts = append(opts, pdfview.WithPlatform(pdfview.IOS))
	default:
		return nil, fmt.Errorf("unknown platform %q, want android or ios", sf.platform)
	}
	if sf.googleReader {
		opts = append(opts, pdfview.WithGoogleReader())
	}
	if sf.cacheDir != "" {
		opts = append(opts, pdfview.WithCacheDir(sf.cacheDir))
	}
	if sf.scrollDisabled {
		opts = append(opts, pdfview.WithScrollDisabled())
	}
	logger, err := newLogger(sf.verbose)
	if err != nil {
		return nil, err
	}
	opts = append(opts, pdfview.WithLogger(logger))
	return opts, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// runResolve implements the "resolve" command.
func runResolve(args []string) error {
	var (
		sf    sourceFlags
		stage bool
	)
	flags := pflag.NewFlagSet("pdfview resolve", pflag.ExitOnError)
	sf.register(flags)
	flags.BoolVar(&stage, "stage", false, "Also stage artifacts and print the locator")
	if err := flags.Parse(args); err != nil {
		return err
	}

	src, err := sf.source()
	if err != nil {
		return err
	}
	opts, err := sf.options()
	if err != nil {
		return err
	}

	out := struct {
		Strategy string `json:"strategy"`
		Locator  string `json:"locator,omitempty"`
	}{}

	if stage {
		v, err := pdfview.NewView(src, opts...)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := v.Mount(ctx); err != nil {
			return err
		}
		out.Strategy = v.Strategy().String()
		if loc, ok := v.Locator(); ok {
			out.Locator = loc.String()
		}
	} else {
		// No staging: report only the strategy the source resolves to.
		platform := pdfview.Android
		if sf.platform == "ios" {
			platform = pdfview.IOS
		}
		out.Strategy = pdfview.ResolveStrategy(platform, src, sf.googleReader).String()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// runOpen implements the "open" command.
func runOpen(args []string) error {
	var (
		sf           sourceFlags
		chromePath   string
		noSandbox    bool
		autoDownload bool
		timeout      time.Duration
	)
	flags := pflag.NewFlagSet("pdfview open", pflag.ExitOnError)
	sf.register(flags)
	flags.StringVar(&chromePath, "chrome", os.Getenv("PDFVIEW_CHROME"), "Chrome executable")
	flags.BoolVar(&noSandbox, "no-sandbox", false, "Disable the Chrome sandbox")
	flags.BoolVar(&autoDownload, "auto-download", false, "Download a Chromium binary when none is found")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Display timeout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	src, err := sf.source()
	if err != nil {
		return err
	}
	opts, err := sf.options()
	if err != nil {
		return err
	}
	opts = append(opts, pdfview.WithTimeout(timeout))
	if chromePath != "" {
		opts = append(opts, pdfview.WithChromePath(chromePath))
	}
	if noSandbox {
		opts = append(opts, pdfview.WithNoSandbox())
	}
	if autoDownload {
		opts = append(opts, pdfview.WithAutoDownload())
	}

	viewer, err := pdfview.NewChromeViewer(opts...)
	if err != nil {
		return err
	}
	defer viewer.Close()

	opts = append(opts,
		pdfview.WithViewer(viewer),
		pdfview.WithLoadHandler(func(ev *pdfview.LoadEvent) {
			fmt.Printf("loaded %s in %s\n", ev.URI, ev.Duration.Round(time.Millisecond))
		}),
	)
	v, err := pdfview.NewView(src, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := v.Mount(ctx); err != nil {
		return err
	}
	defer v.Unmount()
	return nil
}
