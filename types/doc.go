// Package types contains the core types and interfaces shared by the
// dispatch library and its internal packages.
//
// Keeping these definitions in a leaf package lets internal packages depend
// on them without importing the root dispatch package, avoiding import
// cycles. The root package re-exports the commonly used names via type
// aliases for caller convenience.
package types
