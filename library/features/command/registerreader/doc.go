// Package registerreader implements the Register Reader use case.
//
// A reader is identified by their phone number, which can be registered only once.
package registerreader
