// Package aggregate computes the digit-sum of a dataset with interchangeable
// strategies: a sequential loop and a fork-join that runs one unit of work
// per segment.
//
// Both strategies return bit-identical totals for identical input. Any
// failure (an invalid digit, an overflow, a unit that dies before delivering
// its result) aborts the whole run; no partial total is ever returned.
package aggregate
