package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"strings"

	"github.com/iov-one/ledger/app"
	ledgerd "github.com/iov-one/ledger/cmd/ledgerd/app"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
)

// writeTx writes the JSON representation of the transaction as a single
// line, so that many transactions can be streamed.
func writeTx(w io.Writer, tx *app.Tx) error {
	raw, err := app.EncodeTx(tx)
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

// readTx reads a single transaction written by writeTx. io.EOF is returned
// if there is no more data.
func readTx(r *bufio.Reader) (*app.Tx, error) {
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) != 0 {
			return ledgerd.Messages().DecodeTx(line)
		}
		if err != nil {
			return nil, err
		}
	}
}

// writeJSON writes an indented JSON representation of v.
func writeJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

// readKey loads the private key stored by the keygen command.
func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	return crypto.ParsePrivateKey(strings.TrimSpace(string(raw)))
}
