package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateGenerationRecord(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		record  *GenerationRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &GenerationRecord{
				Prompt:    "Hello",
				Provider:  "openai",
				Response:  "Hi there",
				CreatedAt: validTime,
			},
		},
		{
			name: "valid degraded record",
			record: &GenerationRecord{
				Prompt:    "Hello",
				Requested: "anthropic",
				Degraded:  true,
				CreatedAt: validTime,
			},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidGenerationRecord,
		},
		{
			name: "empty prompt",
			record: &GenerationRecord{
				Provider:  "openai",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyPrompt,
		},
		{
			name: "unsupported requested provider",
			record: &GenerationRecord{
				Prompt:    "Hello",
				Requested: "cohere",
				CreatedAt: validTime,
			},
			wantErr: ErrUnsupportedProvider,
		},
		{
			name: "unsupported serving provider",
			record: &GenerationRecord{
				Prompt:    "Hello",
				Provider:  "cohere",
				CreatedAt: validTime,
			},
			wantErr: ErrUnsupportedProvider,
		},
		{
			name: "future timestamp",
			record: &GenerationRecord{
				Prompt:    "Hello",
				CreatedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenerationRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateGenerationRecord() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGenerationRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidGenerationRecord) {
				t.Errorf("ValidateGenerationRecord() error = %v, want wrapped ErrInvalidGenerationRecord", err)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Error("past timestamp should be valid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Error("future timestamp should be invalid")
	}
}

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"zero", 0, false},
		{"at limit", MaxEncodedLength, false},
		{"over limit", MaxEncodedLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLength(tt.length)
			if tt.wantErr && !errors.Is(err, ErrInvalidLength) {
				t.Errorf("ValidateLength(%d) = %v, want ErrInvalidLength", tt.length, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateLength(%d) unexpected error: %v", tt.length, err)
			}
		})
	}
}
