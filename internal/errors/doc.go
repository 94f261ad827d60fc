// Package errors provides structured, coded errors for tether.
//
// Every failure the engine reports carries a stable code (e.g., "E040"),
// a category and a short message taken from a registry, plus optional
// detail, source location and a fix suggestion.
//
// # Error Categories
//
// Errors are organized into categories:
//   - hydration: existing markup and constructed fragment disagree
//   - runtime: binding contract violations (bad indices, non-sequence data)
//   - template: invalid declarative template descriptions
//   - config: tether.json problems
//   - cli: command-line usage problems
//
// # Usage
//
//	err := errors.New("E041").
//	    WithDetail(`expected <td>, found <tbody>`).
//	    WithSuggestion("Check the nesting rules for table content")
//
//	fmt.Println(err.Format())
//
// Callers test for a code with HasCode, which follows wrapped errors.
package errors
