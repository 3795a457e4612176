// Package lendbook implements the Lend Book use case.
//
// Lending is a conditional update in the entity store: only an available book can be lent,
// so of two concurrent attempts on the same book exactly one succeeds.
// The loan starts on the calendar date of OccurredAt and is overdue after core.OverduePolicyDays.
package lendbook
