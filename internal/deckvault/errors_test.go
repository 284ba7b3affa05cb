package deckvault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(notFoundError("gone")))
	assert.Equal(t, CodeForbidden, CodeOf(forbiddenError("nope")))
	assert.Equal(t, CodeAlreadyExists, CodeOf(alreadyExistsError("dup")))
	assert.Equal(t, CodeInvalidArgument, CodeOf(invalidArgError("bad")))
	assert.Equal(t, CodeUnauthenticated, CodeOf(unauthenticated("who")))
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("while deleting: %w", notFoundError("deck does not exist"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestCodeOfForeignErrorIsInternal(t *testing.T) {
	// Storage failures and anything else we did not classify stay opaque.
	assert.Equal(t, CodeInternal, CodeOf(errors.New("connection refused")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}
