package checkdigit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validLEI = "5493006MHB84DD0ZWV18"

func TestValidLEI(t *testing.T) {
	assert.True(t, ValidLEI(validLEI))
}

func TestValidLEIRejectsSingleDigitFlip(t *testing.T) {
	// Only digit positions are mutated: swapping a letter position for a
	// digit changes how many base-100/base-10 slots the string expands
	// to, which is a different kind of corruption than the single-digit
	// substitution MOD 97-10 is guaranteed to catch.
	for i := 0; i < len(validLEI); i++ {
		if validLEI[i] < '0' || validLEI[i] > '9' {
			continue
		}
		b := []byte(validLEI)
		orig := b[i]
		for _, r := range "0123456789" {
			if byte(r) == orig {
				continue
			}
			b[i] = byte(r)
			mutated := string(b)
			if mutated == validLEI {
				continue
			}
			assert.Falsef(t, ValidLEI(mutated), "mutation at %d to %q should fail", i, string(r))
			b[i] = orig
		}
	}
}

func TestValidLEIRejectsWrongLength(t *testing.T) {
	assert.False(t, ValidLEI("TOOSHORT"))
}

const validGLN = "4012345000009"

func TestValidGLN(t *testing.T) {
	assert.True(t, ValidGLN(validGLN))
}

func TestValidGLNRejectsSingleDigitFlip(t *testing.T) {
	for i := 0; i < len(validGLN)-1; i++ { // the check digit position itself is not mutated here
		b := []byte(validGLN)
		orig := b[i]
		for _, r := range "0123456789" {
			if byte(r) == orig {
				continue
			}
			b[i] = byte(r)
			assert.Falsef(t, ValidGLN(string(b)), "mutation at %d to %q should fail", i, string(r))
			b[i] = orig
		}
	}
}

func TestValidGLNRejectsWrongLength(t *testing.T) {
	assert.False(t, ValidGLN("123"))
}
