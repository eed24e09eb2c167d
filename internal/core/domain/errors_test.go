package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestTag_KeepsSentinelClassification(t *testing.T) {
	err := domain.Tag(domain.ErrTargetNotFound, "target", "missing")

	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.Equal(t, domain.ErrTargetNotFound.Error(), err.Error(), "attaching metadata must not change the text")
}

func TestTag_SurvivesFurtherWrapping(t *testing.T) {
	err := zerr.Wrap(domain.Tag(domain.ErrBuildFailed, "failed_targets", "2"), "invocation failed")

	assert.ErrorIs(t, err, domain.ErrBuildFailed)
}

func TestTag_SentinelsStayDistinct(t *testing.T) {
	err := domain.Tag(domain.ErrTargetNotFound, "target", "missing")

	assert.NotErrorIs(t, err, domain.ErrDuplicateTarget)
}
