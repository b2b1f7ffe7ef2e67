package main

import "errors"

var (
	// ErrNotFound reports a missing input folder or a path that is not a directory.
	ErrNotFound = errors.New("not found")
	// ErrIO covers output directory creation and output file writes.
	ErrIO = errors.New("i/o error")
	// ErrDecode marks inputs that are not a readable image.
	ErrDecode = errors.New("decode error")
	// ErrVerify marks outputs that failed post-write verification.
	ErrVerify = errors.New("verification failed")
	// ErrInterrupted is returned by Run when the context is cancelled mid-batch.
	ErrInterrupted = errors.New("interrupted")
)
