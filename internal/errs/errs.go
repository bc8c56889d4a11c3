// Package errs defines the typed errors the persistence core hands back to
// its callers.
//
// Every operation that fails returns one of five kinds. Callers switch on
// the kind (via the Is* predicates) instead of parsing driver messages, and
// the machine Code (e.g. "USER_ALREADY_EXISTS") is stable enough for
// frontend logic and analytics.
package errs
