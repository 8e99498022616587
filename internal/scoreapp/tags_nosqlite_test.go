//go:build !sqlite

package scoreapp

const sqliteBuilt = false
