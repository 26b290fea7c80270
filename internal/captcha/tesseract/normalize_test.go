package tesseract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "AB12", normalize(" ab 12\n"))
	assert.Equal(t, "", normalize("\t\n"))
	assert.Equal(t, "X9Z", normalize("x9z"))
}
