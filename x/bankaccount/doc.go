/*
Package bankaccount implements accounts shared by up to four owners.

Any owner can deposit value into an account. Taking value out is a two
step process. An owner opens a withdraw request for an amount, every other
owner must approve it, and finally the creator of the request executes it.
An account with a single owner needs no approvals.

The value of all accounts is held by the custody address of each account
in the cash extension. Deposits move value from the caller to the custody
and withdrawals move it back to the caller.

A request is marked completed before its value is transferred, so it can
be executed at most once.
*/
package bankaccount
