// Package registeredreaders implements the Registered Readers query use case.
//
// Readers are listed with the newest registrations first, then by last name.
package registeredreaders
