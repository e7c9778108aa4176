// Package migrations holds the schema history of the catalog database.
// Each file registers its migrations from init(); importing this package
// for side effects makes them available to the migration runner.
package migrations
