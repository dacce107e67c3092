// Package catalog stores the shared food, recipe and exercise catalogs.
package catalog
