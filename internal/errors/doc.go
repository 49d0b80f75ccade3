// Package errors provides structured, actionable errors for the quicktip
// server and CLI.
//
// Each error carries a registered code (e.g., "E201") that maps to a
// category, a short message and a longer explanation. Errors about a
// configuration or catalog file can point at the offending line.
//
// # Error Categories
//
//   - config: quicktip.json problems (E101-E199)
//   - catalog: tip catalog loading and validation (E201-E299)
//   - protocol: malformed client frames (E301-E399)
//   - server: listener, upgrade and session problems (E401-E499)
//
// # Usage
//
//	err := errors.New(errors.CatalogInvalidDelay).
//	    WithLocation("tips.yaml", 7, 17).
//	    WithSuggestion("use a Go duration such as 750ms")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E204: Invalid delay
//	//
//	//   tips.yaml:7:17
//	//
//	//        5 │   - targets: [save]
//	//        6 │     text: Save the document
//	//   →    7 │     showDelay: soon
//	//          │                 ^
//	//
//	//   Hint: use a Go duration such as 750ms
package errors
