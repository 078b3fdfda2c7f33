package cmd

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"stable-wallet/pkg/types"
)

func TestColoredState(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "CONFIRMED", coloredState(types.TxConfirmed))
	assert.Equal(t, "SUBMITTED", coloredState(types.TxSubmitted))
	assert.Equal(t, "FAILED", coloredState(types.TxFailed))
	assert.Equal(t, "QUEUED", coloredState(types.TxState("QUEUED")))
}
