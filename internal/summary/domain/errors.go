package domain

import "errors"

// Error taxonomy for summary operations. Delivery maps these to HTTP
// statuses with errors.Is; everything else is a 500.
var (
	// ErrMissingInput: transcript or instruction absent at request time.
	ErrMissingInput = errors.New("transcript and prompt are required")

	// ErrUnsupportedFileType: upload media type not recognized. Raised
	// before any AI call.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrAIGenerationFailed: the mandatory summary call failed. Nothing is
	// persisted.
	ErrAIGenerationFailed = errors.New("failed to generate summary")

	// ErrRefinementFailed: the stateless refinement call failed.
	ErrRefinementFailed = errors.New("failed to refine summary")

	// ErrNotFoundOrForbidden: mutation targeted a record that does not
	// exist or is not owned by the caller. Deliberately conflated so probes
	// cannot tell the two apart.
	ErrNotFoundOrForbidden = errors.New("summary not found or you do not have permission to edit it")

	// ErrNotFound: public share lookup missed.
	ErrNotFound = errors.New("summary not found")

	// ErrEmailSendFailed: the mail collaborator rejected the share. Not
	// retried.
	ErrEmailSendFailed = errors.New("failed to send email")
)
