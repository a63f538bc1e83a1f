package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/client"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/eventlog"
	"github.com/iov-one/ledger/x/admin"
)

// withClient opens the ledger for the duration of fn.
func withClient(home string, fn func(context.Context, *client.Client) error) error {
	node, cleanup, err := openNode(home, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(context.Background(), client.NewClient(node))
}

// formatAmount renders the amount using the token metadata. Raw units are
// printed if the ledger is not initialized.
func formatAmount(ctx context.Context, c *client.Client, amount int64) (string, error) {
	meta, err := c.Metadata(ctx)
	switch {
	case errors.ErrNotFound.Is(err):
		meta = &admin.Metadata{}
	case err != nil:
		return "", err
	}
	return meta.Format(amount), nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of the account.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		accountFl = flAddress(fl, "account", "", "Account address.")
		rawFl     = fl.Bool("raw", false, "Print the amount of the smallest token units.")
	)
	fl.Parse(args)

	return withClient(*homeFl, func(ctx context.Context, c *client.Client) error {
		amount, err := c.Balance(ctx, *accountFl)
		if err != nil {
			return err
		}
		frozen, err := c.IsFrozen(ctx, *accountFl)
		if err != nil {
			return err
		}
		text := fmt.Sprint(amount)
		if !*rawFl {
			if text, err = formatAmount(ctx, c, amount); err != nil {
				return err
			}
		}
		if frozen {
			text += " (frozen)"
		}
		_, err = fmt.Fprintln(output, text)
		return err
	})
}

func cmdAllowance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the amount the spender can still debit from the owner account.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		ownerFl   = flAddress(fl, "owner", "", "Owner address.")
		spenderFl = flAddress(fl, "spender", "", "Spender address.")
	)
	fl.Parse(args)

	return withClient(*homeFl, func(ctx context.Context, c *client.Client) error {
		amount, err := c.Allowance(ctx, *ownerFl, *spenderFl)
		if err != nil {
			return err
		}
		text, err := formatAmount(ctx, c, amount)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, text)
		return err
	})
}

func cmdToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the token metadata, the administrator and the multisig configuration.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
	)
	fl.Parse(args)

	return withClient(*homeFl, func(ctx context.Context, c *client.Client) error {
		meta, err := c.Metadata(ctx)
		if err != nil {
			return err
		}
		adm, err := c.Admin(ctx)
		if err != nil {
			return err
		}
		info := struct {
			Admin     ledger.Address   `json:"admin"`
			Decimal   uint32           `json:"decimal"`
			Name      string           `json:"name"`
			Symbol    string           `json:"symbol"`
			Owners    []ledger.Address `json:"owners,omitempty"`
			Threshold uint32           `json:"threshold,omitempty"`
		}{Admin: adm, Decimal: meta.Decimal, Name: meta.Name, Symbol: meta.Symbol}

		if ms, err := c.MultisigConfig(ctx); err == nil {
			info.Owners = ms.Owners
			info.Threshold = ms.Threshold
		}
		return writeJSON(output, info)
	})
}

func cmdMultisigTx(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the multisig transaction and the owners that approved it.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", conf.Home, "Directory the ledger is stored in. You can use LEDGER_HOME environment variable to set it.")
		idFl   = fl.Uint64("id", 0, "Multisig transaction ID.")
	)
	fl.Parse(args)

	return withClient(*homeFl, func(ctx context.Context, c *client.Client) error {
		tx, err := c.Transaction(ctx, *idFl)
		if err != nil {
			return err
		}
		approvals, err := c.Approvals(ctx, *idFl)
		if err != nil {
			return err
		}
		return writeJSON(output, struct {
			ID        uint64           `json:"id"`
			Operation string           `json:"operation"`
			Target    ledger.Address   `json:"target"`
			Amount    int64            `json:"amount"`
			Expires   uint64           `json:"expiration"`
			Executed  bool             `json:"executed"`
			Approvals []ledger.Address `json:"approvals"`
		}{*idFl, tx.Operation.String(), tx.Target, tx.Amount, tx.Expiration, tx.Executed, approvals})
	})
}

func cmdEvents(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print events from the event journal, oldest first.
`)
		fl.PrintDefaults()
	}
	var (
		dbFl    = fl.String("db", conf.EventsDB, "Event journal database. You can use LEDGER_EVENTS_DB environment variable to set it.")
		topicFl = fl.String("topic", "", "Print only events with this topic.")
		afterFl = fl.Int64("after", 0, "Print only events with a greater journal ID.")
		limitFl = fl.Int("limit", 100, "Maximum number of events to print.")
	)
	fl.Parse(args)
	if *dbFl == "" {
		return errors.Wrap(errors.ErrInput, "event journal database is required")
	}

	journal, err := eventlog.Open(*dbFl)
	if err != nil {
		return err
	}
	defer journal.Close()

	records, err := journal.List(context.Background(), *topicFl, *afterFl, *limitFl)
	if err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(output, "%d\t%d\t%s\n", r.ID, r.Sequence, r.Event); err != nil {
			return err
		}
	}
	return nil
}
