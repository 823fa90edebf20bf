package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	// sha256("admin")
	assert.Equal(t, "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918", Hash("admin"))
	assert.Equal(t, Hash("secret"), Hash("secret"))
	assert.NotEqual(t, Hash("secret"), Hash("Secret"))
}

func TestLooksHashed(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"digest", Hash("anything"), true},
		{"empty", "", false},
		{"plaintext", "admin", false},
		{"63 chars", strings.Repeat("a", 63), false},
		{"65 chars", strings.Repeat("a", 65), false},
		{"non hex", strings.Repeat("g", 64), false},
		{"upper hex", strings.Repeat("A", 64), true},
		// Known misclassification: a 64-hex plaintext password.
		{"hex looking plaintext", strings.Repeat("0", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksHashed(tt.value))
		})
	}
}

func TestVerify(t *testing.T) {
	for _, pw := range []string{"", "admin", "pässwörd", strings.Repeat("x", 200)} {
		assert.True(t, LooksHashed(Hash(pw)))
		assert.True(t, Verify(pw, Hash(pw)))
	}
	assert.False(t, Verify("admin", Hash("admin ")))
	assert.False(t, Verify("admin", "admin"))
}
