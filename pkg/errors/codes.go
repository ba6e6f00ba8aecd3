package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary. This includes file system operations like reading or
	// writing segment files, network operations when communicating with remote
	// systems, and device I/O when accessing storage hardware.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request itself
	// rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base error taxonomy to handle the
// unique failure modes that occur in persistent storage systems. These codes
// represent problems that are specific to the storage layer of your key-value
// store, particularly focusing on segment file management and data persistence.
const (
	// ErrorCodeSegmentCorrupted indicates that a segment file's data has been
	// damaged or is in an inconsistent state.
	ErrorCodeSegmentCorrupted ErrorCode = "SEGMENT_CORRUPTED"

	// ErrorCodeHeaderReadFailure occurs when the system cannot read the header
	// portion of a segment file. Headers contain critical metadata about the
	// segment's structure, so header read failures prevent access to the
	// entire segment and all data it contains.
	ErrorCodeHeaderReadFailure ErrorCode = "HEADER_READ_FAILURE"

	// ErrorCodePayloadReadFailure indicates problems reading the actual data
	// content from segment files after successfully reading the header. This
	// represents a more localized failure compared to header problems, as the
	// segment structure is intact but specific data regions are inaccessible.
	ErrorCodePayloadReadFailure ErrorCode = "PAYLOAD_READ_FAILURE"

	// ErrorCodeRecoveryFailed indicates that the storage system's attempt to
	// recover from a previous failure was unsuccessful. This represents a
	// compound failure where both the original problem and the recovery
	// mechanism have failed, creating a more serious operational situation.
	ErrorCodeRecoveryFailed ErrorCode = "STORAGE_RECOVERY_FAILED"

	// ErrorCodePermissionDenied indicates insufficient permissions to access a resource.
	// This is distinct from generic IO errors because it has a specific resolution path:
	// the user needs to adjust file/directory permissions or run with elevated privileges.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	// This requires specific handling like cleanup operations or alerting administrators.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	// This requires administrative intervention to remount the filesystem with write permissions.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeSerialization indicates a command record could not be encoded
	// to its on-disk JSON representation.
	ErrorCodeSerialization ErrorCode = "SERIALIZATION_ERROR"
)

// Index-specific error codes. The index keeps every live key in memory, so
// its failure modes are about map/key consistency rather than I/O.
const (
	// ErrorCodeIndexKeyNotFound is returned by a remove of a key the index
	// has no record of. It is the only error kind that is purely semantic —
	// it never indicates corruption.
	ErrorCodeIndexKeyNotFound ErrorCode = "INDEX_KEY_NOT_FOUND"

	// ErrorCodeIndexInvalidSegmentID indicates a record pointer referenced a
	// segment generation that no reader exists for.
	ErrorCodeIndexInvalidSegmentID ErrorCode = "INDEX_INVALID_SEGMENT_ID"

	// ErrorCodeIndexTimestampExtraction indicates a segment filename could not
	// be parsed into its generation number.
	ErrorCodeIndexTimestampExtraction ErrorCode = "INDEX_TIMESTAMP_EXTRACTION"

	// ErrorCodeIndexCorrupted indicates the in-memory index disagrees with
	// what is actually on disk, e.g. a position decodes to the wrong record
	// type.
	ErrorCodeIndexCorrupted ErrorCode = "INDEX_CORRUPTED"
)

// Wire-protocol error codes correspond to the closed error taxonomy of the
// framed client/server protocol. Unlike the storage codes above, these cross
// process boundaries as plain strings inside a CommandResponse.
const (
	// ErrorCodeSerde covers frame, compression, and message decode failures.
	ErrorCodeSerde ErrorCode = "SERDE_ERROR"

	// ErrorCodeUTF8 indicates a byte sequence that was required to be valid
	// UTF-8 was not.
	ErrorCodeUTF8 ErrorCode = "UTF8_ERROR"

	// ErrorCodeUnexpectedCommandType indicates on-disk corruption: a position
	// the index pointed at did not decode to the record shape expected.
	ErrorCodeUnexpectedCommandType ErrorCode = "UNEXPECTED_COMMAND_TYPE"

	// ErrorCodeBackend covers errors propagated out of an alternative,
	// non-native storage engine (e.g. the badger-backed adapter).
	ErrorCodeBackend ErrorCode = "BACKEND_ERROR"

	// ErrorCodeEngineMismatch indicates a data directory was opened with an
	// engine kind that disagrees with the "engine" marker file it was last
	// opened with.
	ErrorCodeEngineMismatch ErrorCode = "ENGINE_MISMATCH"
)
