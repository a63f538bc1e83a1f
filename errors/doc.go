/*
Package errors implements the error handling of the ledger.

Every error returned to a client should wrap one of the registered root
errors. Extensions declare their own root errors using Register(code, desc)
and the code is what a client uses to tell the failure kinds apart.

For reusing errors use Errxxx.New and Errxxx.Newf. To add context to an
error returned by another call use Wrap or Wrapf. Message validation collects
all problems using Field and Append so that a client is told about every
invalid attribute at once.

A stacktrace is attached on the first wrap. Print the error using %+v to see
it. Report translates an error into a code and a log message that is safe to
return to a client.
*/
package errors
