package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("env list with spaces and repeats", func(t *testing.T) {
		got := DedupeAndTrim([]string{"kafka-0:9092", " kafka-1:9092", "", "kafka-0:9092 "})
		assert.Equal(t, []string{"kafka-0:9092", "kafka-1:9092"}, got)
	})

	t.Run("case is kept", func(t *testing.T) {
		got := DedupeAndTrim([]string{"https://Registry.example", "https://registry.example"})
		assert.Len(t, got, 2)
	})

	t.Run("only blanks", func(t *testing.T) {
		assert.Empty(t, DedupeAndTrim([]string{" ", ""}))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, DedupeAndTrim(nil))
	})
}

func TestNormalizeRoles(t *testing.T) {
	got := NormalizeRoles([]string{"Staff", " edit", "STAFF", "public_user", ""})
	assert.Equal(t, []string{"staff", "edit", "public_user"}, got)
}
