// Package api provides the local REST API started by "lost serve".
//
// The server owns one source registry for the lifetime of the process and
// serializes every request against it. Changes stay in memory until
// POST /api/v1/save writes the hosts file.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "error_code",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
//
// # Confirming dangerous entries
//
// When a source contains entries that point at public addresses the request
// fails with 409 confirmation_required. The details carry the entries, a
// token and a not_before timestamp. Sending the same request again with
// "confirmation_token" after not_before accepts the entries; sending it earlier
// fails with 425 too_early and keeps the token valid. Tokens are single use
// and only valid for the URL and entries they were issued for.
package api
