// Package testutil holds shared harness code for ringheap's model-vs-real
// tests: a byte stream for fuzz input, an operation decoder and a runner that
// applies the same operations to [ringheap.Heap] and [model.Heap].
package testutil
