// Package database provides SQLite-based storage for extraction history.
// Completed runs and their findings are saved so past results can be
// listed and compared without re-crawling.
package database
