package domain

import "strings"

// Operation is a user-facing pipeline command.
type Operation string

const (
	OperationBuild  Operation = "build"
	OperationUpload Operation = "upload"
	OperationClean  Operation = "clean"
)

// DefaultOperation runs when the caller requests nothing.
const DefaultOperation = OperationBuild

// Operations lists every supported operation.
func Operations() []Operation {
	return []Operation{OperationBuild, OperationUpload, OperationClean}
}

// ParseOperation normalizes a name (trim + lowercase) and validates it.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	switch op {
	case OperationBuild, OperationUpload, OperationClean:
		return op, nil
	}
	return "", &UnknownCommandError{Name: name}
}
