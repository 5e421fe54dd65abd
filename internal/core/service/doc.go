// Package service maps parsed commands onto the key-value store.
//
// Dispatcher holds no state of its own beyond the Storage it was built
// with, and is safe for concurrent use by every connection.
package service
