package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadFloatPairs reads two whitespace-separated numbers per line. Blank
// lines and lines starting with '#' are skipped.
func ReadFloatPairs(filename string) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var pairs [][]float64
	scanner := bufio.NewScanner(file)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 numbers, got %d", lineNumber, len(fields))
		}
		pair := make([]float64, 2)
		for i, field := range fields {
			if pair[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return pairs, nil
}

// GetFilename strips the directory and the extension.
func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OpenFile creates <outputPath><suffix>/<name><ext> when makeDir is set,
// <outputPath><name>_<suffix><ext> otherwise.
func OpenFile(makeDir bool, outputPath string, fileSuffix, modelName, ext string) (*os.File, error) {
	if makeDir && fileSuffix != "" && fileSuffix != "." {
		if err := os.MkdirAll(outputPath+fileSuffix, 0750); err != nil {
			return nil, err
		}
		return os.Create(outputPath + fileSuffix + "/" + modelName + ext)
	} else if fileSuffix == "" {
		return os.Create(outputPath + modelName + ext)
	} else {
		return os.Create(outputPath + modelName + "_" + fileSuffix + ext)
	}
}
