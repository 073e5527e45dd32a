package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common  commonFlags
	output  string
	workers int
	merge   bool
}

// launchFlags holds all flags for the launch command.
type launchFlags struct {
	common    commonFlags
	templates []string
	accounts  string
	baseName  string
	emailType string
	sps       []string
	dryRun    bool
}

// accountsFlags holds all flags for the accounts command.
type accountsFlags struct {
	common commonFlags
	offset int
	limit  int
}

// classifyFlags holds all flags for the classify command.
type classifyFlags struct {
	common commonFlags
	output string
	column string
	batch  int
	model  string
}

// appsFlags holds all flags for the apps command.
type appsFlags struct {
	common  commonFlags
	output  string
	mapping string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string) (*compileFlags, []string, error) {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	f := &compileFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.merge, "merge", false, "merge all inputs into one payload")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCompileUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseLaunchFlags parses launch command flags and returns positional args.
func parseLaunchFlags(args []string) (*launchFlags, []string, error) {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	f := &launchFlags{}

	fs.StringSliceVarP(&f.templates, "templates", "t", nil, "sequence template spreadsheets (repeatable)")
	fs.StringVarP(&f.accounts, "accounts", "a", "", "YAML file mapping SP selections to email account IDs")
	fs.StringVarP(&f.baseName, "base-name", "n", "", "campaign base name")
	fs.StringVar(&f.emailType, "email-type", "Cold Email", "campaign email type prefix")
	fs.StringSliceVarP(&f.sps, "sp", "s", nil, "SP selections to launch (default: all in the export)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print planned campaigns without calling the API")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printLaunchUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAccountsFlags parses accounts command flags.
func parseAccountsFlags(args []string) (*accountsFlags, error) {
	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)
	f := &accountsFlags{}

	fs.IntVar(&f.offset, "offset", 0, "skip the first n accounts")
	fs.IntVar(&f.limit, "limit", 0, "show at most n accounts (0 = all)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printAccountsUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseClassifyFlags parses classify command flags and returns positional args.
func parseClassifyFlags(args []string) (*classifyFlags, []string, error) {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	f := &classifyFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "checkpoint output directory")
	fs.StringVar(&f.column, "column", "", "title column name (default from config)")
	fs.IntVar(&f.batch, "batch", 0, "titles per model request (0 = config default)")
	fs.StringVar(&f.model, "model", "", "model name override")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printClassifyUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAppsFlags parses apps command flags and returns positional args.
func parseAppsFlags(args []string) (*appsFlags, []string, error) {
	fs := flag.NewFlagSet("apps", flag.ContinueOnError)
	f := &appsFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "tagged workbook output path")
	fs.StringVarP(&f.mapping, "mapping", "m", "", "competitor mapping YAML override")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printAppsUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
