/*
Package assert provides runtime assertions for programmer errors, and an error [Collector] for validation that should report every problem at once.

Assertions panic with the label and caller location when violated.
They guard preconditions that indicate a bug in the calling code, such as exhausting an id space, and are not meant for input validation.
Building with the 'noassert' tag turns them into no-ops.
*/
package assert
