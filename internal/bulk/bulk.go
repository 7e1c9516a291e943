package bulk

import "errors"

// MaxIDs caps how many rows one bulk delete may target.
const MaxIDs = 100

var (
	ErrEmpty   = errors.New("ids list is empty")
	ErrTooMany = errors.New("ids list exceeds the maximum of 100")
)

type Request struct {
	IDs []int `json:"ids"`
}

type Result struct {
	DeletedCount int   `json:"deletedCount"`
	DeletedIDs   []int `json:"deletedIds"`
}

// Validate rejects an empty or oversized id list before any row is
// touched.
func Validate(ids []int) error {
	if len(ids) == 0 {
		return ErrEmpty
	}
	if len(ids) > MaxIDs {
		return ErrTooMany
	}
	return nil
}
