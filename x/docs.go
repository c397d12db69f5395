/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application

This package holds what every extension shares: the Authenticator
used to learn who the caller is, and small validation and amount
helpers. Sub-packages are the extensions themselves.

Message and model names are prefixed by the package when used from
outside, so avoid stutter. Use `bankaccount.DepositMsg` rather than
`bankaccount.BankAccountDepositMsg`.
*/
package x
