package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// loadEnvFile loads a local .env file for development runs. A missing file is
// not an error; deployed functions get their environment from the platform.
func loadEnvFile(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
