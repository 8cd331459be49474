package middleware

import "testing"

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateCommentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"top level", "UgzXK7wLwVurCmRiC0Z4AaABAg", "UgzXK7wLwVurCmRiC0Z4AaABAg", false},
		{"reply with dot", "UgzXK7wLwVur.9kVrXyZ3_ab", "UgzXK7wLwVur.9kVrXyZ3_ab", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"invalid chars", "abc/def", "", true},
		{"too long 65", "a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateCommentID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateCommentIDs(t *testing.T) {
	got, errMsg := ValidateCommentIDs([]string{" c1 ", "c2"})
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if len(got) != 2 || got[0] != "c1" || got[1] != "c2" {
		t.Errorf("got %v, want [c1 c2]", got)
	}
}

func TestValidateCommentIDs_RejectsBadMember(t *testing.T) {
	if _, errMsg := ValidateCommentIDs([]string{"c1", "bad id"}); errMsg == "" {
		t.Error("expected error for invalid member")
	}
}

func TestValidateCommentIDs_BatchCap(t *testing.T) {
	ids := make([]string, MaxBatchSize+1)
	for i := range ids {
		ids[i] = "c1"
	}
	if _, errMsg := ValidateCommentIDs(ids); errMsg == "" {
		t.Errorf("expected error for batch over %d ids", MaxBatchSize)
	}
}
