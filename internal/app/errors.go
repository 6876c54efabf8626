package app

import "fmt"

// InitError is returned when one of the bring-up steps fails.
// Stage names the library call that failed.
type InitError struct {
	Stage string
	Err   error
}

func (err *InitError) Error() string {
	return fmt.Sprintf("%s Error: %v", err.Stage, err.Err)
}

func (err *InitError) Unwrap() error {
	return err.Err
}
