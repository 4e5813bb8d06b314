// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		wantErr bool
	}{
		{name: "plain", domain: "test-domain"},
		{name: "dots and underscores", domain: "org.example_project"},
		{name: "colon namespace", domain: "hq:test-domain"},
		{name: "single rune", domain: "x"},
		{name: "max length", domain: strings.Repeat("a", 100)},
		{name: "empty", domain: "", wantErr: true},
		{name: "whitespace", domain: "bad domain", wantErr: true},
		{name: "slash", domain: "a/b", wantErr: true},
		{name: "over max length", domain: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOwnerID(t *testing.T) {
	assert.NoError(t, ValidateOwnerID("bar-user-id"))
	assert.NoError(t, ValidateOwnerID("group:field-team.1"))
	assert.Error(t, ValidateOwnerID(""))
	assert.Error(t, ValidateOwnerID("owner id"))
}

func TestValidateCaseID(t *testing.T) {
	assert.NoError(t, ValidateCaseID("foo-case-id"))
	assert.NoError(t, ValidateCaseID("3F2504E0-4F89-11D3-9A0C-0305E82C3301"))
	assert.Error(t, ValidateCaseID(""))
	assert.Error(t, ValidateCaseID("case\tid"))
}
