package output

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	errorCreateOutputDirFormat = "creating output directory %s: %w"
	errorWriteOutputFileFormat = "writing output file %s: %w"
	outputFilePermissions      = 0o644
	outputDirectoryPermissions = 0o755
)

// WriteToFile writes the rendered artifact to outputFilePath, creating parent
// directories as needed.
func WriteToFile(outputFilePath string, content string) error {
	outputDirectory := filepath.Dir(outputFilePath)
	if outputDirectory != "" && outputDirectory != "." {
		if makeDirError := os.MkdirAll(outputDirectory, outputDirectoryPermissions); makeDirError != nil {
			return fmt.Errorf(errorCreateOutputDirFormat, outputDirectory, makeDirError)
		}
	}
	if writeError := os.WriteFile(outputFilePath, []byte(content), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteOutputFileFormat, outputFilePath, writeError)
	}
	return nil
}
