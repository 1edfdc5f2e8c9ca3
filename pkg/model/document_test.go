package model

import (
	"strings"
	"testing"
)

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr string
	}{
		{
			name: "valid",
			doc:  Document{ID: "D1", PolicyID: "pm-kisan", DocType: AuthorityNotification, DateIssued: date("2019-02-24")},
		},
		{
			name:    "missing id",
			doc:     Document{PolicyID: "pm-kisan"},
			wantErr: "id cannot be empty",
		},
		{
			name:    "missing policy id",
			doc:     Document{ID: "D1"},
			wantErr: "policy id",
		},
		{
			name:    "unknown doc type",
			doc:     Document{ID: "D1", PolicyID: "pm-kisan", DocType: "memo"},
			wantErr: "doc type",
		},
		{
			name: "empty doc type tolerated",
			doc:  Document{ID: "D1", PolicyID: "pm-kisan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorityLevelValid(t *testing.T) {
	for _, a := range []AuthorityLevel{
		AuthorityConstitutional, AuthorityAct, AuthorityRule, AuthorityRegulation,
		AuthorityNotification, AuthorityCircular, AuthorityGuideline,
		AuthorityPressRelease, AuthorityFAQ,
	} {
		if !a.Valid() {
			t.Errorf("%q.Valid() = false, want true", a)
		}
	}
	if AuthorityLevel("ordinance").Valid() {
		t.Error(`"ordinance".Valid() = true, want false`)
	}
}
