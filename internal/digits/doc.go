// Package digits provides the digit-sum primitive shared by every aggregation
// strategy. It is a leaf package: it depends on nothing else in the module.
package digits
