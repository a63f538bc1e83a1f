/*
Package x contains helpers shared by the ledger extensions.

The most important one is the Authenticator interface. Handlers receive an
Authenticator in their constructor and use it to learn which addresses
authorized the current transaction, so the authorization scheme can be
swapped without touching any extension code.
*/
package x
