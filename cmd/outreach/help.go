package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compile    Compile template spreadsheets into a sequence payload")
	fmt.Fprintln(w, "  launch     Launch campaigns from a lead export")
	fmt.Fprintln(w, "  accounts   List registered sending mailboxes")
	fmt.Fprintln(w, "  classify   Classify job titles in a lead workbook")
	fmt.Fprintln(w, "  apps       Tag a store export with detected return apps")
	fmt.Fprintln(w, "  doctor     Check configuration and credentials")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'outreach help <command>' for details on a specific command.")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach compile <input...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile template spreadsheets (.xlsx, .xlsm, .csv) into the")
	fmt.Fprintln(w, "campaign platform's sequence payload JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Template spreadsheets (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>   Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>     Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --merge           Merge all inputs into one payload")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show detailed progress")
}

// printLaunchUsage prints usage for the launch command.
func printLaunchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach launch <leads> -t <templates> -a <accounts> -n <base-name> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create one campaign per SP selection in the lead export: upload")
	fmt.Fprintln(w, "its leads, save the compiled sequences, attach sending accounts,")
	fmt.Fprintln(w, "and apply settings and schedule.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Requires SMARTLEAD_API_KEY in the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  leads    Lead export spreadsheet (.xlsx, .xlsm, .csv)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --templates <path>   Sequence template spreadsheets (repeatable)")
	fmt.Fprintln(w, "  -a, --accounts <path>    YAML mapping of SP selection to account IDs")
	fmt.Fprintln(w, "  -n, --base-name <s>      Campaign base name")
	fmt.Fprintln(w, "      --email-type <s>     Campaign email type prefix (default: Cold Email)")
	fmt.Fprintln(w, "  -s, --sp <s>             SP selections to launch (default: all)")
	fmt.Fprintln(w, "      --dry-run            Print planned campaigns without calling the API")
	fmt.Fprintln(w, "  -c, --config <name>      Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet              Only show errors")
	fmt.Fprintln(w, "  -v, --verbose            Show detailed progress")
}

// printAccountsUsage prints usage for the accounts command.
func printAccountsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach accounts [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the sending mailboxes registered on the campaign platform.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Requires SMARTLEAD_API_KEY in the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --offset <n>      Skip the first n accounts")
	fmt.Fprintln(w, "      --limit <n>       Show at most n accounts (0 = all)")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
}

// printClassifyUsage prints usage for the classify command.
func printClassifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach classify <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Classify every distinct job title in a lead workbook and write a")
	fmt.Fprintln(w, "timestamped copy with Tier and Relevant columns appended. On")
	fmt.Fprintln(w, "interruption or API failure a partial checkpoint is written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Requires GEMINI_API_KEY in the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Lead workbook (.xlsx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>    Checkpoint output directory")
	fmt.Fprintln(w, "      --column <s>      Title column name (default from config)")
	fmt.Fprintln(w, "      --batch <n>       Titles per model request")
	fmt.Fprintln(w, "      --model <s>       Model name override")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show detailed progress")
}

// printAppsUsage prints usage for the apps command.
func printAppsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outreach apps <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tag a store intelligence export with the return apps each merchant")
	fmt.Fprintln(w, "runs and write a two-sheet workbook of matched brands.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Store export spreadsheet (.xlsx, .xlsm, .csv)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>    Tagged workbook output path")
	fmt.Fprintln(w, "  -m, --mapping <path>   Competitor mapping YAML override")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed progress")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "compile":
		printCompileUsage(env.Stdout)
	case "launch":
		printLaunchUsage(env.Stdout)
	case "accounts":
		printAccountsUsage(env.Stdout)
	case "classify":
		printClassifyUsage(env.Stdout)
	case "apps":
		printAppsUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: outreach doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check configuration, credentials, and directories.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: outreach version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: outreach help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
