// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	codeInvalidConfig     = "PUBLISH_CONFIG_INVALID"
	codeApplicationFailed = "APPLICATION_CREATE_FAILED"
	codePageFailed        = "PAGE_CREATE_FAILED"
	codeBlockFailed       = "BLOCK_CREATE_FAILED"
)

func wrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid publish configuration").
		WithTextCode(codeInvalidConfig)
}

// wrapCreateError tags a run-aborting failure. An error that is already
// wrapped keeps its code, so a failed block surfaces as BLOCK_CREATE_FAILED
// even though it also aborts its page.
func wrapCreateError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code)
}
