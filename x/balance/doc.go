/*
Package balance implements the account store of the token.

Every address owns an Account holding its balance and a frozen flag. An
owner can grant spenders an Allowance, a limited amount that the spender
may move or burn on the owner's behalf until the allowance expires.
Expiration is expressed as a ledger sequence number.

Debits from a frozen account are rejected. Credits are always accepted.
*/
package balance
