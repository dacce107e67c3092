// Package intake persists daily logs: consumed foods grouped by meal, water
// and exercise entries, together with the running day totals.
package intake
