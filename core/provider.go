// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "fmt"

// ProviderName identifies a text-generation provider.
type ProviderName string

const (
	ProviderOpenAI      ProviderName = "openai"
	ProviderAnthropic   ProviderName = "anthropic"
	ProviderGoogle      ProviderName = "google"
	ProviderHuggingFace ProviderName = "huggingface"
)

// ProviderNames returns every supported provider in declaration order.
func ProviderNames() []ProviderName {
	return []ProviderName{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderGoogle,
		ProviderHuggingFace,
	}
}

// ParseProviderName converts s to a ProviderName.
// Matching is exact; any other value yields ErrUnsupportedProvider.
func ParseProviderName(s string) (ProviderName, error) {
	name := ProviderName(s)
	if !name.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
	return name, nil
}

// IsValid reports whether n is one of the supported providers.
func (n ProviderName) IsValid() bool {
	switch n {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderHuggingFace:
		return true
	}
	return false
}

func (n ProviderName) String() string {
	return string(n)
}
