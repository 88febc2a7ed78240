// Package gormrepo contains gorm implementations of repository interfaces.
package gormrepo

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/secondary"
)

// equals builds a quoted "column = value" condition after checking the
// column against the entity's known columns.
func equals(known []string, column string, value any) (clause.Expression, error) {
	if !models.HasColumn(known, column) {
		return nil, fmt.Errorf("%w: %q", secondary.ErrUnknownColumn, column)
	}
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}, nil
}

// byID orders results the way rows were inserted.
var byID = clause.OrderByColumn{Column: clause.Column{Name: "id"}}
