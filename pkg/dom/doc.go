// Package dom is the DOM access layer the tooltip engine is written against.
//
// Resolution logic only ever needs a node's identity, its parent, and its
// attributes, plus page geometry for positioning. Keeping that surface to a
// few small interfaces lets the engine run against the server-side vdom
// Document in production and against hand-built trees in tests.
package dom
