package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{name: "empty payload", payload: nil, want: ""},
		{name: "single integer", payload: map[string]any{"id": 1}, want: "id=1"},
		{name: "keys are sorted", payload: map[string]any{"b": "2", "a": "1"}, want: "a=1&b=2"},
		{name: "spaces and reserved characters", payload: map[string]any{"q": "a b&c"}, want: "q=a+b%26c"},
		{name: "booleans", payload: map[string]any{"t": true, "f": false}, want: "f=0&t=1"},
		{name: "nil values are omitted", payload: map[string]any{"a": nil, "b": "x"}, want: "b=x"},
		{name: "floats", payload: map[string]any{"x": 1.5, "y": float64(2)}, want: "x=1.5&y=2"},
		{name: "nested map", payload: map[string]any{"a": map[string]any{"c": 2, "b": 1}}, want: "a%5Bb%5D=1&a%5Bc%5D=2"},
		{name: "slice", payload: map[string]any{"ids": []any{7, 8}}, want: "ids%5B0%5D=7&ids%5B1%5D=8"},
		{name: "typed slice", payload: map[string]any{"s": []string{"x"}}, want: "s%5B0%5D=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.payload))
		})
	}
}

func TestAppendQuery(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		query string
		want  string
	}{
		{name: "empty query keeps url", url: "http://h/p", query: "", want: "http://h/p"},
		{name: "no existing query", url: "http://h/p", query: "id=1", want: "http://h/p?id=1"},
		{name: "existing query", url: "http://h/p?a=1", query: "id=1", want: "http://h/p?a=1&id=1"},
		{name: "trailing question mark", url: "http://h/p?", query: "id=1", want: "http://h/p?id=1"},
		{name: "trailing ampersand", url: "http://h/p?a=1&", query: "id=1", want: "http://h/p?a=1&id=1"},
		{name: "fragment stays last", url: "http://h/p#top", query: "id=1", want: "http://h/p?id=1#top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appendQuery(tt.url, tt.query))
		})
	}
}
