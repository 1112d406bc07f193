package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spetersoncode/aidispatch/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(cli.Options{LogOutput: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if hint := cli.ErrorHint(err); hint != "" {
			fmt.Fprintln(stderr, "hint:", hint)
		}
		return 1
	}
	return 0
}
