// Package storage provides the key-value backends behind the preference
// store: memory, a JSON file written atomically, and sqlite.
package storage
