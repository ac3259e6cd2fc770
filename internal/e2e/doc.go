// Package e2e exercises the compiler and VM together, end to end, on
// small whole programs. It has no exported surface of its own.
package e2e
