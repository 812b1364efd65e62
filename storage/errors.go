package storage

import "errors"

// ErrMissingTable is returned by CheckTables when one of the six
// star-schema CSVs is absent from the tables directory.
var ErrMissingTable = errors.New("table csv not found")
