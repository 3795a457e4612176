// Package httpapi exposes the library use cases as a JSON HTTP API on echo.
//
// Request bodies use camelCase keys, responses use snake_case keys and dates in YYYY-MM-DD format.
// Every failure is answered with {"error": "..."} and a status code derived from the core error taxonomy.
package httpapi
