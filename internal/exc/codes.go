package exc

const (
	CodeUnknownFatal                  = "M0000"
	CodeFileNotFound                  = "M0001"
	CodeUnsuportedFileSystemOperation = "M0002"
	CodePermissionDenied              = "M0003"
	CodeUnsupportedFileFormat         = "M0004"
	CodeUnexpectedEOF                 = "M0005"
)

// Parse failures. Only CodeTrailingInput is ever reported by a parser; the
// others appear as its causes.
const (
	CodeUnexpectedSymbol    = "M0100"
	CodeMissingLeftBracket  = "M0101"
	CodeMissingRightBracket = "M0102"
	CodeEmptyExpressionList = "M0103"
	CodeNoViableAlternative = "M0104"
	CodeTrailingInput       = "M0105"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
