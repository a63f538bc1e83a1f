package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/ledger"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and command line arguments
// except the program name and the command name. It is expected to read and
// write only to provided input and output. Commands that create a
// transaction write it to the output so that they can be combined into a
// pipeline:
//
//	$ ledgerd mint -to 7C7E... -amount 100 \
//	    | ledgerd sign -key admin.key \
//	    | ledgerd submit
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"allowance":        cmdAllowance,
	"approve":          cmdApprove,
	"approve-multisig": cmdApproveMultisig,
	"balance":          cmdBalance,
	"burn":             cmdBurn,
	"burn-from":        cmdBurnFrom,
	"events":           cmdEvents,
	"freeze":           cmdFreeze,
	"init":             cmdInit,
	"initialize":       cmdInitialize,
	"keyaddr":          cmdKeyaddr,
	"keygen":           cmdKeygen,
	"mint":             cmdMint,
	"multisig":         cmdMultisigTx,
	"propose":          cmdPropose,
	"set-admin":        cmdSetAdmin,
	"setup-multisig":   cmdSetupMultisig,
	"sign":             cmdSign,
	"start":            cmdStart,
	"submit":           cmdSubmit,
	"token":            cmdToken,
	"transfer":         cmdTransfer,
	"transfer-from":    cmdTransferFrom,
	"unfreeze":         cmdUnfreeze,
	"version":          cmdVersion,
}

func main() {
	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(2)
	}
	conf = c
	if logger, err = newLogger(conf.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(2)
	}

	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s runs and manages a token ledger.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, ledger.Version())
	return err
}
