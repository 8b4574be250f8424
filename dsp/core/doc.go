// Package core holds the small pieces shared by every streaming processor in
// this module: the sample type constraint, float64 accumulator conversions,
// scratch slice helpers and functional processor options.
package core
