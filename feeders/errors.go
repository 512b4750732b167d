package feeders

import (
	"errors"
	"fmt"
)

// Env feeder errors
var (
	ErrEnvInvalidStructure     = errors.New("env: invalid structure")
	ErrEnvEmptyPrefixAndSuffix = errors.New("env: prefix or suffix cannot be empty")
	ErrEnvFieldCannotBeSet     = errors.New("env: field cannot be set")
)

// DotEnv feeder errors
var (
	ErrDotEnvInvalidStructureType = errors.New("expected pointer to struct")
	ErrDotEnvInvalidLineFormat    = errors.New("invalid .env line format")
)

// Base config feeder errors
var (
	ErrBaseConfigUnsupportedFormat = errors.New("unsupported base config file format")
)

func wrapDotEnvStructureError(got interface{}) error {
	return fmt.Errorf("%w, got %T", ErrDotEnvInvalidStructureType, got)
}

func wrapDotEnvLineError(lineNum int, line string) error {
	return fmt.Errorf("%w at line %d: %s", ErrDotEnvInvalidLineFormat, lineNum, line)
}

func wrapBaseConfigFormatError(path string) error {
	return fmt.Errorf("%w: %s", ErrBaseConfigUnsupportedFormat, path)
}
