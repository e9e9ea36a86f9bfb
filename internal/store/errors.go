package store

import "errors"

var (
	ErrOpeningStore   = errors.New("error opening local store")
	ErrBuildingQuery  = errors.New("error building query")
	ErrExecutingQuery = errors.New("error executing query")
	ErrRecordNotFound = errors.New("record not found")
)
