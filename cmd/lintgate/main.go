// Command lintgate runs a configured lint tool against a project
// directory and forwards its verdict as the process exit status.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/lintgate/lintgate"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/lint"
	gatemcp "github.com/lintgate/lintgate/internal/mcp"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/runner"
	"github.com/lintgate/lintgate/internal/toolenv"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lintgate: ")

	cmd, args := dispatch(os.Args[1:])

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(lintgate.Version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "lintgate: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// dispatch splits os.Args[1:] into a command and its arguments.
// Bare "lintgate" is the zero-argument run; leading flags also belong
// to run, so "lintgate -json" works. -h/--help map to the top-level help.
func dispatch(argv []string) (string, []string) {
	if len(argv) == 0 {
		return "run", nil
	}
	switch {
	case argv[0] == "-h" || argv[0] == "--help":
		return "help", nil
	case strings.HasPrefix(argv[0], "-"):
		return "run", argv
	default:
		return argv[0], argv[1:]
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: lintgate [command] [flags]

Commands:
  run         Run the configured lint tool once and gate on its exit status (default)
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

With no command, lintgate runs the gate. Exit status: 0 when the tool
reported no issues, 1 otherwise.

Use "lintgate <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output the run record as JSON instead of the tool's raw output")
	verboseFlag := fs.Bool("v", false, "print a verdict line after the tool output")
	timeoutFlag := fs.Duration("timeout", 0, "override configured timeout (e.g. 5m)")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine(*timeoutFlag)
	if err != nil {
		return err
	}

	o, err := eng.Run(ctx)
	code := emitRun(o, err, os.Stdout, os.Stderr, *jsonFlag)

	if *verboseFlag && err == nil {
		if o.Passed {
			log.Printf("ok (%s exit 0)", o.Tool)
		} else {
			log.Printf("FAIL (%s exit %d)", o.Tool, o.ExitCode)
		}
	}

	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// emitRun writes the run's output to the given writers and returns the
// gate's exit status: 0 when the tool exited 0, 1 for everything else.
// An error before the tool ran (unresolvable tool, missing target,
// launch failure) collapses to the same failing status.
//
// Without asJSON the tool's stdout and stderr are passed through
// untransformed; the gate adds no output of its own.
func emitRun(o *lint.Outcome, runErr error, stdout, stderr io.Writer, asJSON bool) int {
	if runErr != nil {
		fmt.Fprintf(stderr, "lintgate: %v\n", runErr)
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(o.Record()); err != nil {
			fmt.Fprintf(stderr, "lintgate: %v\n", err)
			return 1
		}
	} else {
		stdout.Write(o.Stdout)
		stderr.Write(o.Stderr)
	}

	if !o.Passed {
		return 1
	}
	return 0
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(gatemcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return serve(ctx, *httpAddr)
}

func serve(ctx context.Context, httpAddr string) error {
	workspace, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config

	disk := report.NewDiskStore()
	store := report.NewLRUStore(5, disk)

	env := toolenv.New(loaded.ProjectRoot, cfg.Env.Dir)
	r := &runner.Runner{
		Workspace: loaded.ProjectRoot,
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
		Env:       env.Environ(),
	}

	server := gatemcp.NewServer(cfg, r, store, env, loaded.ProjectRoot)

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func newEngine(timeoutOverride time.Duration) (*lint.Engine, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config

	timeout := cfg.Timeout()
	if timeoutOverride > 0 {
		timeout = timeoutOverride
	}

	env := toolenv.New(loaded.ProjectRoot, cfg.Env.Dir)
	r := &runner.Runner{
		Workspace: loaded.ProjectRoot,
		Timeout:   timeout,
		MaxOutput: cfg.MaxOutputBytes(),
		Env:       env.Environ(),
	}

	return &lint.Engine{
		Config: cfg,
		Runner: r,
		Env:    env,
		Root:   loaded.ProjectRoot,
	}, nil
}
