/*
Package cash keeps the native value balance of every address.

There is no logic in the value unit except that a balance may never go
below zero or overflow. Moving value between two addresses is atomic, a
failed move leaves both wallets untouched. Other extensions move value
through the Controller interface.
*/
package cash
