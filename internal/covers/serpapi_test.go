package covers

import (
	"context"
	"errors"
	"testing"
)

func TestFirstImageURL(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]interface{}
		want    string
	}{
		{
			name: "thumbnail preferred",
			results: map[string]interface{}{
				"images_results": []interface{}{
					map[string]interface{}{
						"thumbnail": "https://img.example.com/thumb.jpg",
						"original":  "https://img.example.com/full.jpg",
					},
				},
			},
			want: "https://img.example.com/thumb.jpg",
		},
		{
			name: "falls back to original",
			results: map[string]interface{}{
				"images_results": []interface{}{
					map[string]interface{}{"original": "https://img.example.com/full.jpg"},
				},
			},
			want: "https://img.example.com/full.jpg",
		},
		{
			name: "skips malformed entries",
			results: map[string]interface{}{
				"images_results": []interface{}{
					"not a map",
					map[string]interface{}{"thumbnail": "https://img.example.com/second.jpg"},
				},
			},
			want: "https://img.example.com/second.jpg",
		},
		{
			name:    "missing images_results",
			results: map[string]interface{}{"search_metadata": map[string]interface{}{}},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstImageURL(tt.results); got != tt.want {
				t.Errorf("firstImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoopFinder(t *testing.T) {
	_, err := NoopFinder{}.FindCover(context.Background(), "Any Title", "Any Author")
	if !errors.Is(err, ErrNoCover) {
		t.Errorf("NoopFinder should always return ErrNoCover, got %v", err)
	}
}
