package validation

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// pdfMagic is the first bytes of every PDF file.
var pdfMagic = []byte("%PDF-")

// FileError describes why a path failed a check.
type FileError struct {
	Path    string
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}

// CheckFileExists returns nil if path is an existing regular file.
func CheckFileExists(path string) error {
	if path == "" {
		return &FileError{Path: path, Message: "file path cannot be empty"}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileError{Path: path, Message: fmt.Sprintf("file not found: %s", path)}
		}
		return &FileError{Path: path, Message: fmt.Sprintf("error checking file %s: %v", path, err)}
	}
	if info.IsDir() {
		return &FileError{Path: path, Message: fmt.Sprintf("path is a directory, not a file: %s", path)}
	}
	return nil
}

// CheckPDFFile checks that path exists and starts with the PDF signature.
// It does not parse the document.
func CheckPDFFile(path string) error {
	if err := CheckFileExists(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &FileError{Path: path, Message: fmt.Sprintf("cannot open %s: %v", path, err)}
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return &FileError{Path: path, Message: fmt.Sprintf("not a PDF file: %s", path)}
	}
	return nil
}

// CheckDirWritable creates dir if needed and verifies a file can be created
// in it.
func CheckDirWritable(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FileError{Path: dir, Message: fmt.Sprintf("cannot create directory %s: %v", dir, err)}
	}

	f, err := os.CreateTemp(dir, ".finsum-write-check-*")
	if err != nil {
		return &FileError{Path: dir, Message: fmt.Sprintf("directory not writable: %s", dir)}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// CheckEnvFileExists checks for a .env file in the working directory.
func CheckEnvFileExists() error {
	return CheckFileExists(filepath.Clean(".env"))
}
