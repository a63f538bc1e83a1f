/*
Package multisig lets a group of owners authorize token operations
together.

The administrator registers the owners and the number of approvals that
is required (the threshold). Any owner can propose a transfer, mint or burn
operation. The proposal counts as the first approval. Other owners approve
it until the threshold is reached, at which point the operation is executed
as part of the approval that completed it.

A proposal expires at the ledger sequence given when it was created. It
cannot be approved once the sequence reached the expiration.
*/
package multisig
