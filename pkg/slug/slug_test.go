// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sommelier/pkg/slug"
)

/*
TestToken folds case, accents and separators into one spelling.
*/
func TestToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Off-Dry", "off_dry"},
		{"off dry", "off_dry"},
		{"OFF_DRY", "off_dry"},
		{" Rosé ", "rose"},
		{"Stone  Fruit!", "stone_fruit"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Token(tt.in))
		})
	}
}
