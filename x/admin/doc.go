/*
Package admin keeps the single privileged address of the ledger together with
the token metadata.

The administrator is set once by the initialize message and can only be
replaced by the current administrator. It alone may mint new tokens and
freeze or unfreeze accounts.
*/
package admin
