package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParseVersion(t *testing.T) {
	v, err := domain.ParseVersion("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", v.String())
	assert.False(t, v.IsZero())

	_, err = domain.ParseVersion("not-a-version")
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrInvalidVersion.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "not-a-version", zErr.Metadata()["version"])
}

func TestVersion_Compare(t *testing.T) {
	a := domain.MustParseVersion("1.2.0")
	b := domain.MustParseVersion("1.10.0")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(domain.MustParseVersion("1.2")))
	assert.Equal(t, -1, domain.Version{}.Compare(a))
	assert.Equal(t, 0, domain.Version{}.Compare(domain.Version{}))
}

func TestRequirement_Allows(t *testing.T) {
	tests := []struct {
		name    string
		req     string
		version string
		want    bool
	}{
		{name: "empty means any", req: "", version: "3.1.4", want: true},
		{name: "star", req: "*", version: "0.0.1", want: true},
		{name: "range inside", req: ">=1.0, <2.0", version: "1.6.0", want: true},
		{name: "range upper bound", req: ">=1.0, <2.0", version: "2.0.0", want: false},
		{name: "lower bound", req: ">=1.5", version: "1.2.0", want: false},
		{name: "partial pins minor", req: "1.2", version: "1.2.7", want: true},
		{name: "caret", req: "^1.1", version: "1.9.0", want: true},
		{name: "exact mismatch", req: "=1.0.0", version: "1.1.0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := domain.ParseRequirement(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Allows(domain.MustParseVersion(tt.version)))
		})
	}
}

func TestRequirement_ZeroValue(t *testing.T) {
	var req domain.Requirement
	assert.True(t, req.Allows(domain.MustParseVersion("9.9.9")))
	assert.Equal(t, "*", req.String())

	parsed := domain.MustParseRequirement(">=1.0")
	assert.False(t, parsed.Allows(domain.Version{}))
}

func TestParseRequirement_Invalid(t *testing.T) {
	_, err := domain.ParseRequirement(">=>1")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidRequirement.Error())
}
