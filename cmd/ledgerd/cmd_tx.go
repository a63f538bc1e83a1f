package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
	"github.com/iov-one/ledger/x/multisig"
)

// writeMsg validates the message and writes an unsigned transaction
// carrying it.
func writeMsg(output io.Writer, msg ledger.Msg) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return writeTx(output, &app.Tx{Msg: msg})
}

func newTxFlagSet(description string) *flag.FlagSet {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), description)
		fl.PrintDefaults()
	}
	return fl
}

func cmdInitialize(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that sets the administrator and the token metadata of
a ledger that was created without them.
`)
	var (
		adminFl   = flAddress(fl, "admin", "", "Address of the administrator.")
		decimalFl = fl.Uint("decimal", 7, "Number of fraction digits of the token.")
		nameFl    = fl.String("name", "", "Token name.")
		symbolFl  = fl.String("symbol", "", "Token symbol.")
	)
	fl.Parse(args)
	return writeMsg(output, &admin.InitializeMsg{
		Admin:   *adminFl,
		Decimal: uint32(*decimalFl),
		Name:    *nameFl,
		Symbol:  *symbolFl,
	})
}

func cmdMint(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that mints new tokens. It must be signed by the
administrator.
`)
	var (
		toFl     = flAddress(fl, "to", "", "Recipient address.")
		amountFl = fl.Int64("amount", 0, "Amount of the smallest token units.")
	)
	fl.Parse(args)
	return writeMsg(output, &admin.MintMsg{To: *toFl, Amount: *amountFl})
}

func cmdSetAdmin(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that replaces the administrator. It must be signed by
the current administrator.
`)
	var (
		adminFl = flAddress(fl, "admin", "", "Address of the new administrator.")
	)
	fl.Parse(args)
	return writeMsg(output, &admin.SetAdminMsg{NewAdmin: *adminFl})
}

func cmdFreeze(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that blocks all debits from the account. It must be
signed by the administrator.
`)
	var (
		accountFl = flAddress(fl, "account", "", "Account address.")
	)
	fl.Parse(args)
	return writeMsg(output, &admin.FreezeMsg{Account: *accountFl})
}

func cmdUnfreeze(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that lifts the freeze of the account. It must be
signed by the administrator.
`)
	var (
		accountFl = flAddress(fl, "account", "", "Account address.")
	)
	fl.Parse(args)
	return writeMsg(output, &admin.UnfreezeMsg{Account: *accountFl})
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that allows the spender to debit the owner account
until the expiration sequence. It must be signed by the owner.
`)
	var (
		fromFl       = flAddress(fl, "from", "", "Owner address.")
		spenderFl    = flAddress(fl, "spender", "", "Spender address.")
		amountFl     = fl.Int64("amount", 0, "Allowed amount of the smallest token units.")
		expirationFl = fl.Uint64("expiration", 0, "Last ledger sequence the allowance can be used at.")
	)
	fl.Parse(args)
	return writeMsg(output, &balance.ApproveMsg{
		From:       *fromFl,
		Spender:    *spenderFl,
		Amount:     *amountFl,
		Expiration: *expirationFl,
	})
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that moves tokens between accounts. It must be signed
by the source account owner.
`)
	var (
		fromFl   = flAddress(fl, "from", "", "Source address.")
		toFl     = flAddress(fl, "to", "", "Recipient address.")
		amountFl = fl.Int64("amount", 0, "Amount of the smallest token units.")
	)
	fl.Parse(args)
	return writeMsg(output, &balance.TransferMsg{From: *fromFl, To: *toFl, Amount: *amountFl})
}

func cmdTransferFrom(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that moves tokens using an allowance. It must be
signed by the spender.
`)
	var (
		spenderFl = flAddress(fl, "spender", "", "Spender address.")
		fromFl    = flAddress(fl, "from", "", "Source address.")
		toFl      = flAddress(fl, "to", "", "Recipient address.")
		amountFl  = fl.Int64("amount", 0, "Amount of the smallest token units.")
	)
	fl.Parse(args)
	return writeMsg(output, &balance.TransferFromMsg{
		Spender: *spenderFl,
		From:    *fromFl,
		To:      *toFl,
		Amount:  *amountFl,
	})
}

func cmdBurn(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that destroys tokens. It must be signed by the account
owner.
`)
	var (
		fromFl   = flAddress(fl, "from", "", "Account address.")
		amountFl = fl.Int64("amount", 0, "Amount of the smallest token units.")
	)
	fl.Parse(args)
	return writeMsg(output, &balance.BurnMsg{From: *fromFl, Amount: *amountFl})
}

func cmdBurnFrom(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that destroys tokens using an allowance. It must be
signed by the spender.
`)
	var (
		spenderFl = flAddress(fl, "spender", "", "Spender address.")
		fromFl    = flAddress(fl, "from", "", "Account address.")
		amountFl  = fl.Int64("amount", 0, "Amount of the smallest token units.")
	)
	fl.Parse(args)
	return writeMsg(output, &balance.BurnFromMsg{Spender: *spenderFl, From: *fromFl, Amount: *amountFl})
}

func cmdSetupMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that replaces the multisig owners and threshold. It
must be signed by the administrator.
`)
	var (
		ownersFl    = flAddresses(fl, "owners", "Comma separated owner addresses.")
		thresholdFl = fl.Uint("threshold", 0, "Number of approvals required to execute a transaction.")
	)
	fl.Parse(args)
	return writeMsg(output, &multisig.SetupMsg{Owners: *ownersFl, Threshold: uint32(*thresholdFl)})
}

func cmdPropose(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that proposes a multisig operation. It must be signed
by the proposing owner.
`)
	var (
		senderFl     = flAddress(fl, "sender", "", "Proposing owner address.")
		operationFl  = fl.String("operation", "", "One of transfer, mint or burn.")
		targetFl     = flAddress(fl, "target", "", "Target account address.")
		amountFl     = fl.Int64("amount", 0, "Amount of the smallest token units.")
		expirationFl = fl.Uint64("expiration", 0, "Ledger sequence the proposal expires at.")
	)
	fl.Parse(args)
	op, err := multisig.ParseOperation(*operationFl)
	if err != nil {
		return err
	}
	return writeMsg(output, &multisig.ProposeMsg{
		Sender:     *senderFl,
		Operation:  op,
		Target:     *targetFl,
		Amount:     *amountFl,
		Expiration: *expirationFl,
	})
}

func cmdApproveMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := newTxFlagSet(`
Create a transaction that approves a multisig transaction. It must be signed
by the approving owner. The approval that reaches the threshold executes the
transaction and must be signed by the administrator as well.
`)
	var (
		senderFl = flAddress(fl, "sender", "", "Approving owner address.")
		idFl     = fl.Uint64("id", 0, "Multisig transaction ID.")
	)
	fl.Parse(args)
	return writeMsg(output, &multisig.ApproveMsg{Sender: *senderFl, TransactionID: *idFl})
}
