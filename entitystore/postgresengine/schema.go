package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

const (
	operationCreateSchema   = "create_schema"
	logMsgCreateSchemaFailed = "failed to create schema"

	createReadersTableTemplate = `CREATE TABLE IF NOT EXISTS %[1]s (
	phone             VARCHAR(11)  PRIMARY KEY CHECK (phone ~ '^7[0-9]{10}$'),
	first_name        VARCHAR(100) NOT NULL,
	last_name         VARCHAR(100) NOT NULL,
	birth_date        DATE         NOT NULL,
	registration_date DATE         NOT NULL DEFAULT CURRENT_DATE
)`

	createBooksTableTemplate = `CREATE TABLE IF NOT EXISTS %[1]s (
	id               UUID         PRIMARY KEY,
	title            VARCHAR(255) NOT NULL,
	author           VARCHAR(255) NOT NULL,
	cover_type       TEXT         NOT NULL DEFAULT 'hard' CHECK (cover_type IN ('soft', 'hard')),
	publication_year INTEGER      NOT NULL,
	genre            VARCHAR(100) NOT NULL,
	page_count       INTEGER      NOT NULL DEFAULT 0 CHECK (page_count >= 0),
	condition_state  TEXT         NOT NULL DEFAULT 'good' CHECK (condition_state IN ('new', 'good', 'average', 'bad')),
	status           TEXT         NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'borrowed')),
	borrowed_date    DATE,
	borrower_phone   VARCHAR(11)  REFERENCES %[2]s (phone),
	CONSTRAINT %[1]s_loan_consistency CHECK (
		(status = 'available' AND borrower_phone IS NULL AND borrowed_date IS NULL) OR
		(status = 'borrowed' AND borrower_phone IS NOT NULL AND borrowed_date IS NOT NULL)
	)
)`

	createBorrowerIndexTemplate = `CREATE INDEX IF NOT EXISTS %[1]s_borrower_phone_idx ON %[1]s (borrower_phone)`
	createTitleIndexTemplate    = `CREATE INDEX IF NOT EXISTS %[1]s_title_idx ON %[1]s (title)`
)

// CreateSchema creates the readers and books tables with their constraints if they do not exist yet.
// The loan consistency check and the foreign key back the guarded statements of the Store.
func (s *Store) CreateSchema(ctx context.Context) error {
	observer, ctx := s.startOperation(ctx, operationCreateSchema)

	statements := []string{
		fmt.Sprintf(createReadersTableTemplate, s.readersTableName),
		fmt.Sprintf(createBooksTableTemplate, s.booksTableName, s.readersTableName),
		fmt.Sprintf(createBorrowerIndexTemplate, s.booksTableName),
		fmt.Sprintf(createTitleIndexTemplate, s.booksTableName),
	}

	for _, statement := range statements {
		start := time.Now()
		_, execErr := s.db.Exec(ctx, statement)
		observer.logQuery(statement, time.Since(start))

		if execErr != nil {
			return observer.finishError(logMsgCreateSchemaFailed, errorTypeExec, errors.Join(entitystore.ErrExecFailed, execErr))
		}
	}

	observer.finishSuccess()

	return nil
}
