// Package taskrun drives a single long-lived operation to completion while racing it
// against a user interrupt.
//
// Every call to Run allocates its own ExecContext and releases it before returning,
// whichever way the race ends. Nothing but the Interrupt source is shared between calls.
// Cancellation is cooperative: the losing operation sees its context cancelled and is
// dropped; its eventual result is never reported.
package taskrun
