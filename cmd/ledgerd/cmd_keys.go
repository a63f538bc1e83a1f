package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file containing the stellar encoded private key seed
is created and the address of the key is printed. This command fails if the
private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", "", "Path to the private key file.")
	)
	fl.Parse(args)
	if *keyPathFl == "" {
		return errors.Wrap(errors.ErrInput, "key path is required")
	}

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key := crypto.GenPrivKeyEd25519()
	seed, err := key.StrKey()
	if err != nil {
		return err
	}
	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fmt.Fprintln(fd, seed); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex address, the bech32 address and the stellar public key
associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", "", "Path to the private key file.")
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	pub := key.PublicKey()
	addr := pub.Address()
	bech, err := addr.Bech32()
	if err != nil {
		return err
	}
	strkey, err := pub.StrKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "address: %s\nbech32:  %s\npubkey:  %s\n", addr, bech, strkey)
	return err
}
