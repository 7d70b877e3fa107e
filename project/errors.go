package project

import "errors"

var (
	// ErrInvalidRoot is returned when a project document's root element is not <Project>.
	ErrInvalidRoot = errors.New("root element is not Project")

	// ErrPropertyMissing is returned when a required property has no declaration.
	ErrPropertyMissing = errors.New("property is not declared")

	// ErrDuplicatedProperty is returned when a property is declared more than once.
	ErrDuplicatedProperty = errors.New("property is declared more than once")

	// ErrInvalidBoolProperty is returned when a boolean property holds neither true nor false.
	ErrInvalidBoolProperty = errors.New("property is not a boolean")

	// ErrPackageVersionMissing is returned when a PackageVersion item has no Version attribute.
	ErrPackageVersionMissing = errors.New("package version has no Version attribute")

	// ErrNoProjectFile is returned by FindProjectFile when a directory holds no project file.
	ErrNoProjectFile = errors.New("no project file found")

	// ErrMultipleProjectFiles is returned by FindProjectFile when a directory holds several project files.
	ErrMultipleProjectFiles = errors.New("multiple project files found")
)
