package catalog

import "fmt"

const (
	CodeMissingField        = "MISSING_FIELD"
	CodeInvalidType         = "INVALID_TYPE"
	CodeNonPositiveValue    = "NON_POSITIVE_VALUE"
	CodeEmptyString         = "EMPTY_STRING"
	CodeInvalidCreditRange  = "INVALID_CREDIT_RANGE"
	CodeDuplicateCourseID   = "DUPLICATE_COURSE_ID"
	CodeUnknownPrerequisite = "UNKNOWN_PREREQUISITE"
	CodeUnknownCorequisite  = "UNKNOWN_COREQUISITE"
	CodeInvalidOfferedTerm  = "INVALID_OFFERED_TERM"
	CodeInvalidGroup        = "INVALID_GROUP"
)

// LoadError describes a catalog file that failed validation. Context is the
// key path of the offending value, e.g. "courses[2].credits".
type LoadError struct {
	Code    string
	Context string
	Message string
}

func (e *LoadError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s [%s]", e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Context, e.Message, e.Code)
}

func loadErrorf(code, context, format string, args ...any) *LoadError {
	return &LoadError{
		Code:    code,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	}
}
