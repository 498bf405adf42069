package diagnostics

// Error code constants, grouped by phase. The taxonomy mirrors the
// teacher's PAR###/LDR###/EVA### style registry, reworked around Mint's
// five error categories instead of AILANG's typechecking/elaboration
// pipeline.
const (
	// Lexical (LEX###)
	LEX001 = "LEX001" // illegal character
	LEX002 = "LEX002" // unterminated string
	LEX003 = "LEX003" // malformed escape sequence
	LEX004 = "LEX004" // invalid unicode escape

	// Syntactic (PAR###)
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // missing closing delimiter

	// Semantic (SEM###)
	SEM001 = "SEM001" // undefined symbol
	SEM002 = "SEM002" // type mismatch
	SEM003 = "SEM003" // invalid target type for dependency
	SEM004 = "SEM004" // circular dependency
	SEM005 = "SEM005" // redefinition

	// Filesystem (FS###)
	FS001 = "FS001" // missing file
	FS002 = "FS002" // permission denied
	FS003 = "FS003" // I/O failure

	// Build (BLD###)
	BLD001 = "BLD001" // action command failed
	BLD002 = "BLD002" // source neither exists nor is produced
)

// CodeInfo describes one error code for tooling that wants to list or
// explain the taxonomy (e.g. a future `mint help errors`).
type CodeInfo struct {
	Code     string
	Category string
	Summary  string
}

// Registry maps every code above to its category and a short summary.
var Registry = map[string]CodeInfo{
	LEX001: {LEX001, "lexical", "illegal character"},
	LEX002: {LEX002, "lexical", "unterminated string"},
	LEX003: {LEX003, "lexical", "malformed escape sequence"},
	LEX004: {LEX004, "lexical", "invalid unicode escape"},
	PAR001: {PAR001, "syntactic", "unexpected token"},
	PAR002: {PAR002, "syntactic", "missing closing delimiter"},
	SEM001: {SEM001, "semantic", "undefined symbol"},
	SEM002: {SEM002, "semantic", "type mismatch"},
	SEM003: {SEM003, "semantic", "invalid target type for dependency"},
	SEM004: {SEM004, "semantic", "circular dependency"},
	SEM005: {SEM005, "semantic", "redefinition"},
	FS001:  {FS001, "filesystem", "missing file"},
	FS002:  {FS002, "filesystem", "permission denied"},
	FS003:  {FS003, "filesystem", "I/O failure"},
	BLD001: {BLD001, "build", "action command failed"},
	BLD002: {BLD002, "build", "source neither exists nor is produced"},
}
