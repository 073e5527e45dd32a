package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-outreach/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()
	os.Exit(run(os.Args[1:], env))
}

// run dispatches the command line to a command and returns its exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "compile":
		return exitOn(runCompileCmd(ctx, rest, env), env)
	case "launch":
		return exitOn(runLaunchCmd(ctx, rest, env), env)
	case "accounts":
		return exitOn(runAccountsCmd(ctx, rest, env), env)
	case "classify":
		return exitOn(runClassifyCmd(ctx, rest, env), env)
	case "apps":
		return exitOn(runAppsCmd(rest, env), env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "outreach %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// exitOn prints the error, if any, and maps it to an exit code.
func exitOn(err error, env *Environment) int {
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// initLogging wires the process logger to stderr per the common flags.
func initLogging(env *Environment, common commonFlags) {
	if common.quiet {
		return
	}
	logging.Init(env.Stderr, common.verbose)
}
