// Package httpapi exposes the macromate commands and queries as JSON
// endpoints on a go-router server. Every route except registration resolves
// the calling actor from the go-auth context.
package httpapi
