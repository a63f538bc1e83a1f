package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger/app"
	ledgerd "github.com/iov-one/ledger/cmd/ledgerd/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/admin"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new ledger in the home directory.

The initial state is read from a genesis file if one is given. Otherwise it
is built from the flags. Without an administrator the ledger stays
uninitialized until the initialize transaction is submitted.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl      = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		genesisFl   = fl.String("genesis", "", "Path to a genesis file. Other flags are ignored if set.")
		chainIDFl   = fl.String("chain-id", conf.ChainID, "Chain ID. You can use LEDGER_CHAIN_ID environment variable to set it.")
		adminFl     = flAddress(fl, "admin", "", "Address of the administrator.")
		decimalFl   = fl.Uint("decimal", 7, "Number of fraction digits of the token.")
		nameFl      = fl.String("name", "", "Token name.")
		symbolFl    = fl.String("symbol", "", "Token symbol.")
		ownersFl    = flAddresses(fl, "owners", "Comma separated addresses of the multisig owners.")
		thresholdFl = fl.Uint("threshold", 0, "Number of owner approvals required to execute a multisig transaction.")
	)
	fl.Parse(args)

	var (
		gen *app.Genesis
		err error
	)
	if *genesisFl != "" {
		gen, err = app.LoadGenesis(*genesisFl)
	} else {
		gen, err = ledgerd.GenGenesis(ledgerd.GenesisOptions{
			ChainID: *chainIDFl,
			Admin:   *adminFl,
			Metadata: admin.Metadata{
				Decimal: uint32(*decimalFl),
				Name:    *nameFl,
				Symbol:  *symbolFl,
			},
			Owners:    *ownersFl,
			Threshold: uint32(*thresholdFl),
		})
	}
	if err != nil {
		return errors.Wrap(err, "genesis")
	}

	node, cleanup, err := openNode(*homeFl, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := node.InitChain(gen.ChainID, gen.AppState); err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "initialized chain %s in %s\n", gen.ChainID, *homeFl)
	return err
}
