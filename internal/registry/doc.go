// Package registry resolves which manifest an operation targets and carries out
// reads, writes and downloads against it.
package registry
