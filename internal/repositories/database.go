package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uniqueViolation = "23505"

// NewPostgresRepositories builds every store on top of an open *sql.DB.
func NewPostgresRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Product: NewProductRepo(db),
		Cart:    NewCartRepo(db),
		Order:   NewOrderRepo(db),
	}
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}

	return err
}

// objectID scans a CHAR(24) column into a primitive.ObjectID.
type objectID struct {
	dest *primitive.ObjectID
}

func scanID(dest *primitive.ObjectID) *objectID {
	return &objectID{dest: dest}
}

func (o *objectID) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case nil:
		*o.dest = primitive.NilObjectID
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported id type %T", src)
	}

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", raw, err)
	}

	*o.dest = id

	return nil
}
