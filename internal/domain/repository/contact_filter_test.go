package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

func TestContactFilter_LikePattern(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"   ":     "",
		"ana":     "%ana%",
		" ana ":   "%ana%",
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`c:\temp`: `%c:\\temp%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, repository.ContactFilter{Query: in}.LikePattern(), in)
	}
}
