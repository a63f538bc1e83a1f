package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/ledger"
)

type addressValue struct {
	addr *ledger.Address
}

func (v addressValue) String() string {
	if v.addr == nil || *v.addr == nil {
		return ""
	}
	return v.addr.String()
}

func (v addressValue) Set(s string) error {
	a, err := ledger.ParseAddress(s)
	if err != nil {
		return err
	}
	*v.addr = a
	return nil
}

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *ledger.Address {
	var a ledger.Address
	if defaultVal != "" {
		var err error
		a, err = ledger.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q ledger.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(addressValue{addr: &a}, name, usage)
	return &a
}

type addressesValue struct {
	addrs *[]ledger.Address
}

func (v addressesValue) String() string {
	if v.addrs == nil {
		return ""
	}
	s := make([]string, len(*v.addrs))
	for i, a := range *v.addrs {
		s[i] = a.String()
	}
	return strings.Join(s, ",")
}

func (v addressesValue) Set(s string) error {
	var addrs []ledger.Address
	for _, chunk := range strings.Split(s, ",") {
		a, err := ledger.ParseAddress(strings.TrimSpace(chunk))
		if err != nil {
			return err
		}
		addrs = append(addrs, a)
	}
	*v.addrs = addrs
	return nil
}

// flAddresses returns a comma separated list of addresses value.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]ledger.Address {
	var addrs []ledger.Address
	fl.Var(addressesValue{addrs: &addrs}, name, usage)
	return &addrs
}
