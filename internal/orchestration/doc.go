// Package orchestration runs one or more aggregation strategies over a
// dataset and compares their outcomes. It decouples the aggregation layer
// from presentation via the ResultPresenter and ErrorHandler interfaces.
package orchestration
