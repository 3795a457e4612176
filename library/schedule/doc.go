// Package schedule runs the daily overdue report.
//
// The report executes the overdue books query on a cron schedule and logs one warning per overdue loan,
// so librarians see them without opening the API.
package schedule
