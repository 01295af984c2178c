package seo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
)

func TestApplyImageHints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		hints    ImageHints
		want     map[string]string
		excluded []string
	}{
		{
			name:     "defaults",
			hints:    ImageHints{},
			want:     map[string]string{"loading": "lazy", "itemprop": "image", "decoding": "async"},
			excluded: []string{"alt", "fetchpriority"},
		},
		{
			name:  "hero image",
			hints: ImageHints{Alt: "Hero", Loading: "eager", FetchPriority: "high"},
			want: map[string]string{
				"alt": "Hero", "loading": "eager", "fetchpriority": "high",
				"itemprop": "image", "decoding": "async",
			},
		},
		{
			name:     "auto priority omitted",
			hints:    ImageHints{FetchPriority: "auto"},
			want:     map[string]string{"loading": "lazy"},
			excluded: []string{"fetchpriority"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			img := dom.NewHTML().Create("img")
			ApplyImageHints(img, tc.hints)

			for k, v := range tc.want {
				got, ok := img.Attr(k)
				require.True(t, ok, k)
				require.Equal(t, v, got, k)
			}
			for _, k := range tc.excluded {
				_, ok := img.Attr(k)
				require.False(t, ok, k)
			}
		})
	}
}

func TestApplyImageHintsNilNode(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { ApplyImageHints(nil, ImageHints{Alt: "x"}) })
}
