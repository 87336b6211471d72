package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, passage body).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped during loading.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF sequences were rewritten to LF.
	FileNormalizedCRLF
	// FilePassage indicates a passage body sliced out of a container
	// file; Container and Base locate it there.
	FilePassage
)

// File captures metadata and content for a single source text.
// For passages extracted from a story container, Container is the
// containing file and Base is the passage's byte offset inside it.
type File struct {
	ID        FileID
	Path      string
	Content   []byte
	LineIdx   []uint32
	Hash      [32]byte
	Flags     FileFlags
	Container FileID
	Base      uint32
}

// LineCol is a human-readable position, both components 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
