package mailer

import "errors"

var (
	// ErrResumeNotFound means no active resume type matched the submission.
	ErrResumeNotFound = errors.New("resume type not found")
	// ErrEmptyAttachment means the resume link served a zero-byte body.
	ErrEmptyAttachment = errors.New("downloaded file is empty")
	// ErrSendFailed wraps transport failures from the mail sender.
	ErrSendFailed = errors.New("error sending application email")
)
