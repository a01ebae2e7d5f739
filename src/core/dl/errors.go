/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"errors"
	"fmt"
)

// Failure taxonomy threaded through every adapter call. Handlers branch on
// these with errors.Is instead of nil-checking partial results.
var (
	ErrNotFound       = errors.New("media not found")
	ErrPolicyRejected = errors.New("policy rejected")
	ErrMissingSource  = errors.New("missing download source")

	ErrTooLong  = fmt.Errorf("%w: duration over limit", ErrPolicyRejected)
	ErrTooLarge = fmt.Errorf("%w: file over size ceiling", ErrPolicyRejected)
)
