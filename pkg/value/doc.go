// Package value implements the escaped-value proxy used by the render
// engine. A Value wraps one runtime value together with an escape mode and
// exposes read-only structural access: key/index lookup, iteration, method
// dispatch and invocation. Every accessor re-wraps its result so that the
// escape mode propagates through arbitrarily deep access chains; escaping
// itself happens only at stringification time.
package value
