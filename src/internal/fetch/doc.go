// Package fetch downloads source hosts lists over HTTP.
package fetch
