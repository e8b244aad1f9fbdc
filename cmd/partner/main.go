// Command partner manages customers and suppliers from the command line.
// Requests are read as JSON from a file or stdin and results are written
// to stdout as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/forniture-store/backend/internal/bootstrap"
	"github.com/forniture-store/backend/internal/domain/shared"
)

const (
	exitError      = 1
	exitUsage      = 2
	exitNotFound   = 3
	exitValidation = 4
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := exitCode(run(ctx, args))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) error {
	rt, err := bootstrap.New(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	db, err := rt.Database()
	if err != nil {
		return err
	}
	lookups, err := rt.LookupService()
	if err != nil {
		return err
	}
	services := bootstrap.NewPartnerServices(db, lookups, rt.Logger)

	cmd := command{in: os.Stdin, out: os.Stdout}
	switch args[0] {
	case "customer":
		return dispatch(ctx, cmd, customerActions(services.Customers), args[1], args[2:])
	case "supplier":
		return dispatch(ctx, cmd, supplierActions(services.Suppliers), args[1], args[2:])
	default:
		return usageError{fmt.Sprintf("unknown entity %q, want customer or supplier", args[0])}
	}
}

// exitCode reports err on stderr (or stdout for field errors) and maps it to a status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(os.Stderr, "partner: %s\n\n", usage.msg)
		printUsage()
		return exitUsage
	}
	if verrs, ok := shared.AsValidationErrors(err); ok {
		_ = writeJSON(os.Stdout, validationReport(verrs))
		return exitValidation
	}

	fmt.Fprintf(os.Stderr, "partner: %v\n", err)
	if errors.Is(err, shared.ErrNotFound) {
		return exitNotFound
	}
	return exitError
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  partner [flags] <customer|supplier> <action> [arguments]

Actions:
  create <file|->          Create from a JSON request
  update <id> <file|->     Apply a partial JSON update
  get <id>                 Show one record with its primary address
  list [-search s] [-page n] [-page-size n]
  delete <id>              Delete the record and its addresses
  activate <id>
  deactivate <id>

Exit status: 3 when the record does not exist, 4 on validation errors
(printed to stdout as JSON).

Flags:
  -env-file string   Environment file to load (default: .env)`)
}
