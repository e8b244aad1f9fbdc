// Command lookup resolves a CEP or a CNPJ through the configured providers
// and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/forniture-store/backend/internal/bootstrap"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		printUsage()
		os.Exit(2)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	found, err := run(ctx, args[0], args[1], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}
	if !found {
		os.Exit(3)
	}
}

func run(ctx context.Context, kind, key string, out io.Writer) (bool, error) {
	rt, err := bootstrap.New(ctx)
	if err != nil {
		return false, err
	}
	defer rt.Close()

	svc, err := rt.LookupService()
	if err != nil {
		return false, err
	}

	var answer any
	var found bool
	switch kind {
	case "cep":
		resp := svc.LookupPostalCode(ctx, key)
		answer, found = resp, resp.Found
	case "cnpj":
		resp := svc.LookupCompany(ctx, key)
		answer, found = resp, resp.Found
	default:
		return false, fmt.Errorf("unknown lookup %q, want cep or cnpj", kind)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(answer); err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}
	return found, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  lookup [flags] cep <postal code>
  lookup [flags] cnpj <tax id>

Prints the lookup result as JSON. Exits with status 3 when nothing was found.

Flags:
  -env-file string   Environment file to load (default: .env)`)
}
