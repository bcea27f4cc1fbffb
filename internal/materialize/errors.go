package materialize

import "fmt"

// PathCreationError reports a directory that could not be created for a
// reason other than it already existing.
type PathCreationError struct {
	Path string
	Err  error
}

func (e *PathCreationError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Path, e.Err)
}

func (e *PathCreationError) Unwrap() error { return e.Err }

// FileWriteError reports a leaf file that could not be opened, written or closed.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("write file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
