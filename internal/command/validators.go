// Copyright (c) 2026 The msgidx Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OneOf returns a validator accepting only the given strings.
func OneOf(valid ...string) FlagValidatorType {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !slices.Contains(valid, s) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

func OutputValidator(value any) error {
	return OneOf("text", "json", "raw", "yaml")(value)
}
