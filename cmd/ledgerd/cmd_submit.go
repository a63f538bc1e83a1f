package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/client"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/multisig"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content. Signing can be repeated to collect signatures of many keys.

The nonce is read from the ledger unless it is given.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		keyPathFl = fl.String("key", "", "Path to the private key file that transaction should be signed with.")
		nonceFl   = fl.Int64("nonce", -1, "Nonce of the signer. Read from the ledger if negative.")
		chainIDFl = fl.String("chain-id", "", "Chain ID. Read from the ledger if empty.")
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	tx, err := readTx(bufio.NewReader(input))
	if err != nil {
		return errors.Wrap(err, "cannot read transaction")
	}

	chainID, nonce := *chainIDFl, *nonceFl
	if chainID == "" || nonce < 0 {
		// The ledger is released before the output is written, so that
		// the next command of a pipeline can open it.
		node, cleanup, err := openNode(*homeFl, nil)
		if err != nil {
			return err
		}
		if chainID == "" {
			chainID = node.ChainID()
		}
		if nonce < 0 {
			nonce, err = client.NewClient(node).NextNonce(context.Background(), key.PublicKey().Address())
		}
		cleanup()
		if err != nil {
			return err
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, nonce)
	if err != nil {
		return errors.Wrap(err, "cannot sign transaction")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return writeTx(output, tx)
}

// txResult is the printed outcome of a delivered transaction.
type txResult struct {
	Path          string         `json:"path"`
	TransactionID *uint64        `json:"transaction_id,omitempty"`
	Log           string         `json:"log,omitempty"`
	Events        []ledger.Event `json:"events"`
}

func newTxResult(tx *app.Tx, res *ledger.DeliverResult) txResult {
	r := txResult{Path: ledger.GetPath(tx), Log: res.Log, Events: res.Events}
	if _, ok := tx.Msg.(*multisig.ProposeMsg); ok {
		if id, err := orm.DecodeSequence(res.Data); err == nil {
			r.TransactionID = &id
		}
	}
	return r
}

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a signed transaction from standard input, deliver and commit it. The
ledger is opened only after the transaction was read. The delivery result is
written to standard output.

A rejected transaction still consumes the nonces of its signers. Use -check
to run it without changing the ledger.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl  = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		checkFl = fl.Bool("check", false, "Only check the transaction, nothing is stored.")
	)
	fl.Parse(args)

	tx, err := readTx(bufio.NewReader(input))
	if err != nil {
		return errors.Wrap(err, "cannot read transaction")
	}
	node, cleanup, err := openNode(*homeFl, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	c := client.NewClient(node)
	if *checkFl {
		res, err := c.CheckTx(context.Background(), tx)
		if err != nil {
			return errors.Redact(err, debugMode())
		}
		return writeJSON(output, txResult{Path: ledger.GetPath(tx), Log: res.Log})
	}
	res, err := c.CommitTx(context.Background(), tx)
	if err != nil {
		return errors.Redact(err, debugMode())
	}
	return writeJSON(output, newTxResult(tx, res))
}

// txFailure is the printed outcome of a rejected transaction.
type txFailure struct {
	Path  string `json:"path,omitempty"`
	Code  uint32 `json:"code"`
	Error string `json:"error"`
}

func cmdStart(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Process a stream of signed transactions, one per line, read from standard
input until it is closed. Every transaction is committed separately and its
result written to standard output. Failing transactions are reported and do
not stop the processing. Prometheus metrics are served while running.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		metricsFl = fl.String("metrics", conf.MetricsAddr, "Metrics HTTP server address. Empty disables it. You can use LEDGER_METRICS_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	reg := prometheus.NewRegistry()
	node, cleanup, err := openNode(*homeFl, reg)
	if err != nil {
		return err
	}
	defer cleanup()

	if *metricsFl != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: *metricsFl, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Cannot stop metrics server", "err", err)
			}
		}()
	}

	c := client.NewClient(node)
	r := bufio.NewReader(input)
	for {
		tx, err := readTx(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Code(err) == 1 {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			code, reason := errors.Report(err, debugMode())
			if err := writeJSON(output, txFailure{Code: code, Error: reason}); err != nil {
				return err
			}
			continue
		}
		res, err := c.CommitTx(context.Background(), tx)
		if err != nil {
			logger.Info("Transaction rejected", "path", ledger.GetPath(tx), "err", err)
			code, reason := errors.Report(err, debugMode())
			if err := writeJSON(output, txFailure{Path: ledger.GetPath(tx), Code: code, Error: reason}); err != nil {
				return err
			}
			continue
		}
		if err := writeJSON(output, newTxResult(tx, res)); err != nil {
			return err
		}
	}
}
